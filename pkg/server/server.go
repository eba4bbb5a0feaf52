package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/rbs392/llmockapi/pkg/config"
	"github.com/rbs392/llmockapi/pkg/conversation"
	"github.com/rbs392/llmockapi/pkg/journal"
	"github.com/rbs392/llmockapi/pkg/mock"
	"github.com/rbs392/llmockapi/pkg/server/handlers"
	"github.com/rbs392/llmockapi/pkg/server/middleware"
	"github.com/rbs392/llmockapi/pkg/telemetry/metrics"
)

// internalPrefix is the path prefix reserved for diagnostic routes. Requests
// under it never reach the pipeline.
const internalPrefix = "/__internal"

// Options carries the wired components the server routes to. Metrics and
// journal are optional; nil disables the corresponding routes and recording.
type Options struct {
	Pipeline *mock.Pipeline
	Store    *conversation.Store
	Metrics  *metrics.Metrics
	Journal  journal.Storage
	Recorder *journal.Recorder
}

// Server is the llmockapi HTTP server.
type Server struct {
	config       config.ServerConfig
	opts         Options
	httpServer   *http.Server
	shutdownOnce sync.Once
	logger       *slog.Logger

	mu        sync.RWMutex
	isRunning bool
}

// New creates a server with the given configuration and components.
func New(cfg config.ServerConfig, opts Options) *Server {
	return &Server{
		config: cfg,
		opts:   opts,
		logger: slog.Default().With("component", "server"),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled, a
// termination signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.config.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting mock server", "address", s.config.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("mock server stopped")
	})

	return shutdownErr
}

// Handler builds the full route tree with the middleware chain applied.
//
// Dispatch order: /__internal/* goes to diagnostics, /favicon.ico is refused
// without touching the conversation, and everything else, any method, runs
// the pipeline.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(s.logger))

	r.Route(internalPrefix, func(r chi.Router) {
		r.Get("/health", handlers.Health())
		r.Get("/messages", handlers.Messages(s.opts.Store))
		r.Get("/ui", handlers.UI(s.opts.Store))
		if s.opts.Journal != nil {
			r.Get("/journal", handlers.Journal(s.opts.Journal))
		}
		if s.opts.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
		}
	})

	// Browsers request this unprompted; answering via the pipeline would
	// pollute the conversation with phantom exchanges.
	r.Handle("/favicon.ico", http.NotFoundHandler())

	r.Handle("/*", newMockHandler(s.opts.Pipeline, s.opts.Store, s.opts.Metrics, s.opts.Recorder))

	return r
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
