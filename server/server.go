// Package server exposes the script pipeline over HTTP. Routes mirror the
// original browser front end (/chat/{role}, /edit-ai-message/,
// /speech-input/) plus read-only inspection endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hupe1980/scriptmesh"
	"github.com/hupe1980/scriptmesh/core"
	"github.com/hupe1980/scriptmesh/logging"
	"github.com/hupe1980/scriptmesh/metrics"
)

// Mesh is the subset of *scriptmesh.ScriptMesh the server needs.
type Mesh interface {
	Run(ctx context.Context, role string, input string) (string, error)
	EditLastGenerated(role string, text string) (string, error)
	History(role string) ([]core.Message, error)
	LongTermMemory(role string) ([]string, error)
	Drafts(role string) ([]scriptmesh.Draft, error)
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Roles() []core.Role
	Upstream(role string) ([]core.Role, error)
}

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins lists the origins granted CORS access. "*" allows all.
	AllowedOrigins []string
	// MaxBodyBytes bounds request bodies; speech payloads are the largest.
	MaxBodyBytes int64
	// Metrics mounts /metrics when set.
	Metrics *metrics.Collector

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Logger defaults to logging.NoOpLogger.
	Logger logging.Logger
}

// Server serves the HTTP API.
type Server struct {
	mesh   Mesh
	opts   Options
	logger logging.Logger
}

// New creates a Server for mesh.
func New(mesh Mesh, optFns ...func(o *Options)) *Server {
	opts := Options{
		MaxBodyBytes:    25 << 20,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{mesh: mesh, opts: opts, logger: opts.Logger}
}

// Handler constructs the chi mux with all routes wired.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.opts.AllowedOrigins))
	r.Use(s.limitBody)

	r.Get("/health", s.handleHealth())
	r.Get("/roles", s.handleRoles())
	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics.Handler())
	}

	r.Post("/chat/{role}", s.handleChat())
	r.Put("/edit-ai-message/", s.handleEdit())
	r.Post("/speech-input/", s.handleSpeech())

	r.Route("/sessions/{role}", func(r chi.Router) {
		r.Get("/history", s.handleHistory())
		r.Get("/memory", s.handleMemory())
		r.Get("/drafts", s.handleDrafts())
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.New("server: listen failed: " + err.Error())
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
