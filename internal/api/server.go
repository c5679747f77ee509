// Package api implements the graphtint HTTP API.
//
// The API exposes the styling pipeline over HTTP:
//
//	POST /v1/style          apply a query to a graph, returns the styled graph
//	POST /v1/render         apply a query and render DOT or SVG
//	POST /v1/snapshots      style and persist the result under an ID
//	GET  /v1/snapshots/{id} fetch a stored result
//	GET  /healthz           liveness probe
//
// Errors use a JSON envelope {"error": {"code", "message"}} with codes from
// pkg/errors. Every response carries an X-Request-ID header.
package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/graphtint/graphtint/pkg/cache"
	"github.com/graphtint/graphtint/pkg/snapshot"
)

// Server wires the styling pipeline to HTTP handlers.
type Server struct {
	cfg    Config
	logger *log.Logger
	cache  cache.Cache
	keyer  cache.Keyer
	store  snapshot.Store
}

// New creates a server. A nil logger discards output, a nil cache disables
// caching, and a nil store selects the in-memory snapshot store.
func New(cfg Config, logger *log.Logger, c cache.Cache, store snapshot.Store) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = snapshot.NewMemoryStore(cfg.Snapshots.TTL.Duration)
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		store:  store,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/style", s.handleStyle)
		r.Post("/render", s.handleRender)
		r.Post("/snapshots", s.handleSnapshotCreate)
		r.Get("/snapshots/{id}", s.handleSnapshotGet)
		r.Delete("/snapshots/{id}", s.handleSnapshotDelete)
	})
	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
