// Package server initializes and runs the main application server.
// It wires the media pipeline into the HTTP transport, supervises the
// staging reaper, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mediavault/internal/filex"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/media"
	"github.com/dmitrijs2005/mediavault/internal/server/config"
	"github.com/dmitrijs2005/mediavault/internal/server/httpapi"
	"github.com/dmitrijs2005/mediavault/internal/staging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.HTTPServer
	reaper *staging.Reaper
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	if c.StagingDir != "" {
		dir, err := filex.EnsureDir(c.StagingDir)
		if err != nil {
			return nil, fmt.Errorf("staging dir init error: %w", err)
		}
		c.StagingDir = dir
	}

	fetcher := media.NewFetcher(media.FetchConfig{
		TimeoutPerAttempt: c.FetchTimeoutPerAttempt,
		MaxAttempts:       c.FetchMaxAttempts,
		BaseDelay:         c.FetchBaseDelay,
		MaxResponseBytes:  c.FetchMaxResponseBytes,
		AllowedHosts:      c.AllowedHosts,
	}, logger)

	svc := media.NewService(fetcher, logger)

	app := &App{
		config: c,
		logger: logger,
		server: httpapi.NewHTTPServer(c, svc, logger),
	}

	if c.StagingDir != "" {
		app.reaper = staging.NewReaper(c.StagingDir, c.MaxFileAge, c.ReapInterval, logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.reaper != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.reaper.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
			}
		}()
	}

	wg.Wait()

	if app.reaper != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.reaper.Drain(drainCtx); err != nil {
			app.logger.Error(drainCtx, err.Error())
		}
	}

	app.logger.Info(context.Background(), "App stopped")
}
