package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mj1618/desktop-bridge/internal/config"
	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

// Routes served by Handler.
const (
	RouteComputerPreview = "/computer/preview"
	RouteComputerExecute = "/computer/execute"
	RouteShellPreview    = "/shell/preview"
	RouteShellExecute    = "/shell/execute"
	RouteShellRestart    = "/shell/restart"
	RouteCapture         = "/autopilot/capture"
	RouteAct             = "/autopilot/act"
	RoutePermissions     = "/autopilot/permissions"
	RouteHealth          = "/healthz"
	RouteMetrics         = "/metrics"
)

const requestIDHeader = "X-Request-ID"

// Handler returns the bridge HTTP API. Unknown method and path pairs both
// answer 404.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestMiddleware)
	r.Use(middleware.Recoverer)

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, bridgeerrors.New(bridgeerrors.ErrCodeNotFound, "not found"))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Post(RouteComputerPreview, s.handleComputerPreview)
	r.Post(RouteComputerExecute, s.handleComputerExecute)
	r.Post(RouteShellPreview, s.handleShellPreview)
	r.Post(RouteShellExecute, s.handleShellExecute)
	r.Post(RouteShellRestart, s.handleShellRestart)
	r.Post(RouteCapture, s.handleCapture)
	r.Post(RouteAct, s.handleAct)
	r.Get(RoutePermissions, s.handlePermissions)
	r.Get(RouteHealth, s.handleHealth)
	if s.cfg.Metrics {
		r.Handle(RouteMetrics, promhttp.Handler())
	}
	return r
}

// ListenAndServe binds the loopback address from the config and serves
// until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. ln must be bound
// to a loopback address.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok && !tcp.IP.IsLoopback() {
		_ = ln.Close()
		return fmt.Errorf("refusing to serve on non-loopback address %s", tcp)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("bridge listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestMiddleware tags each request with an ID, logs it and records
// metrics under the matched route pattern.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) maxBody() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return config.DefaultMaxBodyBytes
}

func (s *Server) handleComputerPreview(w http.ResponseWriter, r *http.Request) {
	var req ComputerRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), false); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, s.PreviewComputer(req))
}

func (s *Server) handleComputerExecute(w http.ResponseWriter, r *http.Request) {
	var req ComputerRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), false); err != nil {
		respondError(w, err)
		return
	}
	resp, err := s.ExecuteComputer(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, resp)
}

func (s *Server) handleShellPreview(w http.ResponseWriter, r *http.Request) {
	var req ShellRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), false); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, s.PreviewShell(req))
}

func (s *Server) handleShellExecute(w http.ResponseWriter, r *http.Request) {
	var req ShellRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), false); err != nil {
		respondError(w, err)
		return
	}
	resp, err := s.ExecuteShell(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, resp)
}

func (s *Server) handleShellRestart(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, s.RestartShell())
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), true); err != nil {
		respondError(w, err)
		return
	}
	resp, err := s.Capture(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, resp)
}

func (s *Server) handleAct(w http.ResponseWriter, r *http.Request) {
	var req ActRequest
	if err := decodeJSONBody(w, r, &req, s.maxBody(), false); err != nil {
		respondError(w, err)
		return
	}
	resp, err := s.Act(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, resp)
}

func (s *Server) handlePermissions(w http.ResponseWriter, _ *http.Request) {
	status, err := s.Permissions()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}
