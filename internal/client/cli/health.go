package cli

import (
	"context"
	"fmt"
)

// Health checks that the server answers its health endpoint.
func (a *App) Health(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		return fmt.Errorf("server check failed: %w", err)
	}

	fmt.Fprintln(a.out, "Server is up")
	return nil
}
