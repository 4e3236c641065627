// Package httpapi exposes the media pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/media"
	"github.com/dmitrijs2005/mediavault/internal/server/config"
	"golang.org/x/time/rate"
)

type HTTPServer struct {
	config *config.Config
	media  *media.Service
	logger logging.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewHTTPServer(c *config.Config, m *media.Service, l logging.Logger) *HTTPServer {
	return &HTTPServer{
		config:   c,
		media:    m,
		logger:   l.With("module", "http_server"),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.Addr)

	var err error
	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		err = srv.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
