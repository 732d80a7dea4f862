package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalogstats/internal/logging"
)

// Options configures the HTTP server.
type Options struct {
	Addr string
	// RateLimitPerMinute caps requests per client IP; 0 disables the limit.
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
}

type Server struct {
	handler *Handler
	opts    Options
}

func NewServer(handler *Handler, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{handler: handler, opts: opts}
}

// Router builds the chi route tree with the global middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(requestIDLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(observe)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(
				s.opts.RateLimitPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}
		r.Get("/", s.handler.Index)
		r.Get("/api/report", s.handler.Report)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.opts.Addr).Msg("🚀 HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Dur("timeout", s.opts.ShutdownTimeout).Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logging.Info().Msg("✅ HTTP server stopped")
	return nil
}
