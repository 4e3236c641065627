package staging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/dmitrijs2005/mediavault/internal/logging"
)

// Reaper deletes staged files once they outlive maxAge. It runs on its own
// timer, decoupled from request handling; files vanishing underneath it are
// an expected race, not an error.
type Reaper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   logging.Logger
}

func NewReaper(dir string, maxAge, interval time.Duration, logger logging.Logger) *Reaper {
	return &Reaper{dir: dir, maxAge: maxAge, interval: interval, logger: logger}
}

// Run sweeps the staging directory every interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) error {
	r.logger.Info(ctx, "staging reaper started",
		"dir", r.dir, "interval", r.interval.String(), "max_age", r.maxAge.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "staging reaper stopped")
			return nil
		case <-ticker.C:
			r.sweep(ctx, time.Now())
		}
	}
}

// sweep removes entries whose modification time is older than maxAge as of
// now. Per-file problems are logged and skipped; the scan always finishes.
func (r *Reaper) sweep(ctx context.Context, now time.Time) int {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.logger.Error(ctx, "staging scan failed", "error", err.Error())
		return 0
	}

	cutoff := now.Add(-r.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			r.logger.Warn(ctx, "skipping staged entry", "name", entry.Name(), "error", err.Error())
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Somebody else removed it first.
				continue
			}
			r.logger.Warn(ctx, "failed to remove staged entry", "name", entry.Name(), "error", err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		r.logger.Info(ctx, "removed aged staged entries", "count", removed)
	}
	return removed
}

// Drain removes every staged file regardless of age. Called once at
// shutdown; best-effort, the aggregated error is for logging only and must
// not block the shutdown path.
func (r *Reaper) Drain(ctx context.Context) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("drain staging dir: %w", err)
	}

	var result *multierror.Error
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("remove %s: %w", entry.Name(), err))
			continue
		}
		removed++
	}

	r.logger.Info(ctx, "staging drained", "removed", removed)
	return result.ErrorOrNil()
}
