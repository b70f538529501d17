// Package web serves the published changelog: an HTML blog, the JSON feed,
// and syntax-highlighted diff pages. The server is strictly read-only over
// the pages directory.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/log"
)

// shutdownTimeout bounds graceful shutdown on exit.
const shutdownTimeout = 10 * time.Second

// Server hosts the changelog site.
type Server struct {
	store        *changelog.Store
	addr         string
	rateLimitRPS int
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-IP request limit per second. 0 disables limiting.
func WithRateLimit(rps int) Option {
	return func(s *Server) {
		s.rateLimitRPS = rps
	}
}

// NewServer creates a Server for the feed in store listening on addr.
func NewServer(store *changelog.Store, addr string, opts ...Option) *Server {
	s := &Server{
		store: store,
		addr:  addr,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := log.WithComponent("web")

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.addr).Msg("serving changelog site")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
