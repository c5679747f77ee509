package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/graphtint/graphtint/pkg/cache"
	"github.com/graphtint/graphtint/pkg/errors"
	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/render"
	"github.com/graphtint/graphtint/pkg/rules"
	"github.com/graphtint/graphtint/pkg/snapshot"
)

// styleRequest is the shared body for the style, render, and snapshot
// endpoints.
type styleRequest struct {
	Graph *graph.Graph `json:"graph"`
	Query string       `json:"query"`

	// Render options, ignored by /v1/style.
	Format string `json:"format,omitempty"` // "svg" (default) or "dot"
	Layout string `json:"layout,omitempty"`
}

// styleResponse carries the styled graph plus everything the parse
// collected.
type styleResponse struct {
	Graph       *graph.Graph       `json:"graph"`
	ParseErrors []rules.ParseError `json:"parse_errors,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	Cached      bool               `json:"cached"`
}

// =============================================================================
// Styling Pipeline
// =============================================================================

// style runs the pipeline for one request, consulting the cache first.
// Parse errors do not fail the request; they ride along in the response so
// clients can show them next to the partially styled graph.
func (s *Server) style(ctx context.Context, g *graph.Graph, query string) (*styleResponse, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "missing graph")
	}
	if err := graph.Validate(g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph")
	}

	raw, err := graph.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal graph")
	}
	key := s.keyer.StyleKey(cache.Hash(raw), cache.Hash([]byte(query)))

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var resp styleResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.Cached = true
			return &resp, nil
		}
	}

	engine := rules.NewEngine(s.logger)
	engine.ParseQuery(query)
	engine.Apply(g, graph.NewContext(g))

	resp := &styleResponse{
		Graph:       g,
		ParseErrors: engine.ParseErrors(),
		Warnings:    engine.Warnings(),
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.cfg.CacheTTL.Duration)
	}
	return resp, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStyleRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.style(r.Context(), req.Graph, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStyleRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := req.Format
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "dot" {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format))
		return
	}

	resp, err := s.style(r.Context(), req.Graph, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(render.ToDOT(resp.Graph)))
		return
	}

	styled, err := graph.Marshal(resp.Graph)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "marshal styled graph"))
		return
	}
	key := s.keyer.RenderKey(cache.Hash(styled), cache.RenderKeyOpts{Format: format, Layout: req.Layout})

	svg, hit, _ := s.cache.Get(r.Context(), key)
	if !hit {
		svg, err = render.SVG(r.Context(), resp.Graph, render.Options{Layout: req.Layout})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = s.cache.Set(r.Context(), key, svg, s.cfg.CacheTTL.Duration)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleSnapshotCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStyleRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := s.style(r.Context(), req.Graph, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	snap := &snapshot.Snapshot{
		Query:    req.Query,
		Graph:    resp.Graph,
		Warnings: resp.Warnings,
	}
	if err := s.store.Put(r.Context(), snap); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSnapshotDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Request/Response Helpers
// =============================================================================

func decodeStyleRequest(r *http.Request) (*styleRequest, error) {
	var req styleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return &req, nil
}

// errorEnvelope is the JSON error format for all endpoints.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorEnvelope{
		Error: errorBody{Code: string(code), Message: errors.UserMessage(err)},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
