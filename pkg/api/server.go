// Package api serves the wall configurator over HTTP.
//
// Stateless endpoints take a full parameter set per request:
//
//	GET  /healthz
//	GET  /materials
//	POST /layout
//	POST /cost
//	POST /render/{format}
//
// Orders:
//
//	POST /orders
//	GET  /orders/{id}
//
// Sessions hold parameters and an uploaded image between requests, the way
// an interactive configurator page does:
//
//	POST   /sessions
//	GET    /sessions/{id}
//	PUT    /sessions/{id}/params
//	PUT    /sessions/{id}/image
//	POST   /sessions/{id}/rotate
//	DELETE /sessions/{id}/image
//	GET    /sessions/{id}/layout
//	GET    /sessions/{id}/cost
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} with the
// status derived from the error code.
package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/perfwall/pkg/order"
	"github.com/matzehuels/perfwall/pkg/pipeline"
	"github.com/matzehuels/perfwall/pkg/session"
)

// DefaultMaxUploadBytes bounds request bodies, including image uploads.
const DefaultMaxUploadBytes = 16 << 20

// Config wires a Server to its dependencies. Runner, Orders and Sessions
// are required.
type Config struct {
	Runner         *pipeline.Runner
	Orders         *order.Service
	Sessions       session.Store
	Logger         *log.Logger
	MaxUploadBytes int64
	MaxImageSize   int           // opt-in downscale bound in pixels, 0 keeps uploads as decoded
	RequestTimeout time.Duration // per request, 0 means 60s
}

// Server is the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	orders    *order.Service
	sessions  session.Store
	logger    *log.Logger
	maxUpload int64
	maxImage  int
	timeout   time.Duration
}

// New returns a server for cfg.
func New(cfg Config) *Server {
	s := &Server{
		runner:    cfg.Runner,
		orders:    cfg.Orders,
		sessions:  cfg.Sessions,
		logger:    cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
		maxImage:  cfg.MaxImageSize,
		timeout:   cfg.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.timeout <= 0 {
		s.timeout = 60 * time.Second
	}
	return s
}

// Handler returns the routed handler with logging and recovery.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/materials", s.handleMaterials)
	r.Post("/layout", s.handleLayout)
	r.Post("/cost", s.handleCost)
	r.Post("/render/{format}", s.handleRender)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", s.handleCreateOrder)
		r.Get("/{id}", s.handleGetOrder)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Put("/params", s.handleSetParams)
			r.Put("/image", s.handleSetImage)
			r.Delete("/image", s.handleClearImage)
			r.Post("/rotate", s.handleRotate)
			r.Get("/layout", s.handleSessionLayout)
			r.Get("/cost", s.handleSessionCost)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.orders.Wait()
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= 500 {
			s.logger.Error("request", fields...)
		} else {
			s.logger.Debug("request", fields...)
		}
	})
}
