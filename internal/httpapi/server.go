// Package httpapi exposes the toolbox over HTTP: markup scanning, share
// link generation, user agent detection, metrics and health.
package httpapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/toolbox"
	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/internal/telemetry"
)

// Server serves the toolbox API.
type Server struct {
	kit    *toolbox.Kit
	logger *slog.Logger
	router chi.Router
}

// New builds the router for kit.
func New(kit *toolbox.Kit) *Server {
	s := &Server{
		kit:    kit,
		logger: kit.Logger(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/scan", s.handleScan)
	r.Post("/meta", s.handleMeta)
	r.Get("/share", s.handleShare)
	r.Get("/share/targets", s.handleTargets)
	r.Get("/detect", s.handleDetect)

	if m := s.kit.Metrics(); m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	}
	return r
}

// unmatchedRoute is the route label of requests no route matched.
const unmatchedRoute = "unmatched"

// instrument counts requests by route pattern and traces them.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx, span := s.kit.Metrics().StartSpan(r.Context(), "http "+r.Method)

		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.kit.Metrics().HTTPRequest(route, status)
		telemetry.EndSpan(span, nil)

		s.logger.Debug("httpapi: request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	cfg := s.kit.Config()
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("httpapi: listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("E121").Wrap(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.New("E121").Wrap(err)
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	te := errors.FromError(err, "E120")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(te.FormatJSON()))
}
