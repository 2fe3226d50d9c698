// Package api provides the HTTP REST API for the Sathi health assistant.
//
// Endpoints:
//
//	POST /api/chat               - symptom analysis via the sathi/chat Flow
//	GET  /health                 - liveness probe
//	GET  /ready                  - readiness probe (knowledge base seeded)
//	POST /api/sessions           - create a conversation session
//	GET  /api/sessions/{id}      - fetch a session transcript
//	POST /api/facilities/nearby  - nearby primary health centers
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery, rate limiting)
//   - health.go: health check endpoints
//   - session.go: session endpoints
//   - chat.go: chat endpoint via Genkit Flow
//   - facility.go: health facility lookup
//   - response.go: JSON response helpers
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/arogyasathi/sathi/internal/knowledge"
	"github.com/arogyasathi/sathi/internal/rag"
	"github.com/arogyasathi/sathi/internal/session"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:5000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation can take a while, so this exceeds the generation timeout.
	WriteTimeout = 90 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the Sathi REST API.
type Server struct {
	mux     *http.ServeMux
	limiter *rate.Limiter
	logger  *slog.Logger

	// Handlers
	health   *HealthHandler
	session  *SessionHandler
	chat     *ChatHandler
	facility *FacilityHandler
}

// NewServer creates a new HTTP server with all routes registered.
// chatFlow is obtained from rag.NewFlow and backs the /api/chat endpoint.
// limiter may be nil, in which case rate limiting is disabled.
func NewServer(know *knowledge.Store, sessions *session.Store, chatFlow *rag.Flow, limiter *rate.Limiter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	s := &Server{
		mux:      mux,
		limiter:  limiter,
		logger:   logger,
		health:   NewHealthHandler(know, logger),
		session:  NewSessionHandler(sessions, logger),
		chat:     NewChatHandler(chatFlow, logger),
		facility: NewFacilityHandler(logger),
	}

	s.health.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.facility.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → rate limit → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		rateLimitMiddleware(s.limiter),
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
