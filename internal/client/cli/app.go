package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mediavault/internal/client/client"
	"github.com/dmitrijs2005/mediavault/internal/client/config"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewHTTPClient(c.ServerAddr, c.APIKey, c.RequestTimeout, c.InsecureTLS)

	return &App{
		config: c,
		api:    api,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run dispatches the command named by the first argument. The remaining
// arguments are handed to the command for its own flag parsing.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "fetch":
		return a.Fetch(ctx, rest)
	case "health":
		return a.Health(ctx)
	default:
		a.printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "Usage: mediavault <command> [flags]")
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  fetch    download and decrypt one media object")
	fmt.Fprintln(a.out, "  health   check that the server is reachable")
}
