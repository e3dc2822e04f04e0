// Package server exposes the plot over HTTP: the interactive page, SVG and
// PNG snapshots, and the JSON endpoints the page posts clicks and hovers to.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/chart"
	"github.com/sells-group/state-scatter/internal/export"
	"github.com/sells-group/state-scatter/internal/model"
	"github.com/sells-group/state-scatter/internal/scene"
	"github.com/sells-group/state-scatter/internal/svg"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
}

// Server routes HTTP requests onto a chart event loop.
type Server struct {
	loop   *chart.Loop
	router chi.Router
}

// ClickResponse is returned by the caption click endpoint.
type ClickResponse struct {
	Changed bool        `json:"changed"`
	Frame   scene.Frame `json:"frame"`
}

// New builds the router for loop.
func New(loop *chart.Loop, opts Options) *Server {
	s := &Server{loop: loop, router: chi.NewRouter()}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handlePage)
	r.Get("/chart.svg", s.handleSVG)
	r.Get("/chart.png", s.handlePNG)
	r.Route("/api", func(r chi.Router) {
		r.Get("/frame", s.handleFrame)
		r.Post("/captions/{field}/click", s.handleClick)
		r.Post("/markers/{index}/hover", s.handleHover)
		r.Delete("/markers/{index}/hover", s.handleLeave)
	})
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) frame(ctx context.Context) (scene.Frame, error) {
	var f scene.Frame
	err := s.loop.Do(ctx, func(c *chart.Controller, now time.Time) {
		f = c.Frame(now)
	})
	return f, err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := svg.WritePage(&buf, f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := svg.Write(&buf, f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	field, ok := model.ParseField(chi.URLParam(r, "field"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown field")
		return
	}

	var resp ClickResponse
	err := s.loop.Do(r.Context(), func(c *chart.Controller, now time.Time) {
		resp.Changed = c.Click(field, now)
		resp.Frame = c.Frame(now)
	})
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	zap.L().Info("server: caption clicked",
		zap.String("field", field.String()),
		zap.Bool("changed", resp.Changed),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, (*chart.Controller).Hover)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, (*chart.Controller).Leave)
}

type markerEvent func(c *chart.Controller, index int, binding string, now time.Time) (scene.TooltipFrame, error)

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev markerEvent) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown marker")
		return
	}
	binding := r.URL.Query().Get("binding")

	var (
		tip    scene.TooltipFrame
		evtErr error
	)
	if err := s.loop.Do(r.Context(), func(c *chart.Controller, now time.Time) {
		tip, evtErr = ev(c, index, binding, now)
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	switch {
	case errors.Is(evtErr, scene.ErrNoMarker):
		writeError(w, http.StatusNotFound, "unknown marker")
	case errors.Is(evtErr, scene.ErrDetached):
		writeError(w, http.StatusConflict, "stale binding")
	case evtErr != nil:
		writeError(w, http.StatusInternalServerError, evtErr.Error())
	default:
		writeJSON(w, http.StatusOK, tip)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
