// Package daemon serves a record service over the JSON API that
// recordservice.HTTPClient speaks, so several machines can share one
// local database.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/recordservice"
)

// shutdownTimeout bounds how long requests in flight may take after stop
const shutdownTimeout = 5 * time.Second

// maxBodyBytes caps save and delete request bodies
const maxBodyBytes = 1 << 20

// Server exposes a recordservice.Service over HTTP
type Server struct {
	service  recordservice.Service
	listener net.Listener
	http     *http.Server
	metrics  *Metrics
	logger   *slog.Logger

	shutdownOnce sync.Once
}

// NewServer listens on addr (e.g. "127.0.0.1:7420", or ":0" for any port)
func NewServer(addr string, service recordservice.Service, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		service:  service,
		listener: listener,
		metrics:  NewMetrics(),
		logger:   logger,
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Addr returns the address the server is listening on
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Metrics returns the server's counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves requests until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("record server starting", "addr", s.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("record server context cancelled, shutting down")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve error: %w", err)
		}
		return nil
	}
	return s.Shutdown()
}

// Shutdown stops accepting requests and waits for those in flight
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = s.http.Shutdown(ctx)
		// Serve closes the listener itself; this covers a server never started
		_ = s.listener.Close()

		snap := s.metrics.GetSnapshot()
		s.logger.Info("record server stopped",
			"requests", snap.Requests,
			"saves", snap.Saves,
			"deletes", snap.Deletes,
			"rejections", snap.Rejections,
			"uptime", snap.Uptime)
	})
	return err
}

// Handler returns the API routes. It is exported for httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/lookups", s.handleLookups)
	mux.HandleFunc("GET /api/{kind}", s.handleList)
	mux.HandleFunc("POST /api/{kind}/save", s.handleSave)
	mux.HandleFunc("POST /api/{kind}/delete", s.handleDelete)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	return s.track(mux)
}

// track counts every request and logs it at debug level
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := s.metrics.begin()
		defer done()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request served", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	params := recordservice.ListParams{
		Scope:  r.URL.Query().Get("scope"),
		Search: r.URL.Query().Get("search"),
	}
	records, err := s.service.List(r.Context(), kind, params)
	if err != nil {
		s.fail(w, "list", err)
		return
	}
	s.write(w, http.StatusOK, recordservice.WireResponse{OK: true, Records: recordservice.EncodeRecords(records)})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	var req recordservice.WireSaveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Fields) == 0 {
		s.reject(w, http.StatusBadRequest, &recordservice.RemoteError{
			Code:    recordservice.CodeRequiredField,
			Message: "no fields to save",
		})
		return
	}

	res, err := s.service.Save(r.Context(), kind, req.ID, req.Fields)
	if err != nil {
		s.fail(w, "save", err)
		return
	}
	s.metrics.Saves.Add(1)
	s.logger.Info("record saved", "kind", kind, "record_id", req.ID, "fields", len(req.Fields))
	s.write(w, http.StatusOK, recordservice.WireResponse{OK: true, Fields: res.Canonical})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	var req recordservice.WireDeleteRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.Delete(r.Context(), kind, req.ID); err != nil {
		s.fail(w, "delete", err)
		return
	}
	s.metrics.Deletes.Add(1)
	s.logger.Info("record deleted", "kind", kind, "record_id", req.ID)
	s.write(w, http.StatusOK, recordservice.WireResponse{OK: true})
}

func (s *Server) handleLookups(w http.ResponseWriter, r *http.Request) {
	l, err := s.service.Lookups(r.Context())
	if err != nil {
		s.fail(w, "lookups", err)
		return
	}
	s.write(w, http.StatusOK, recordservice.WireResponse{OK: true, Lookups: recordservice.EncodeLookups(l)})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, s.metrics.GetSnapshot())
}

// kind resolves the {kind} path segment, answering 404 for unknown kinds
func (s *Server) kind(w http.ResponseWriter, r *http.Request) (models.EntityKind, bool) {
	name := r.PathValue("kind")
	kind, ok := models.ParseKind(name)
	if !ok {
		s.reject(w, http.StatusNotFound, &recordservice.RemoteError{
			Code:    recordservice.CodeNotFound,
			Message: fmt.Sprintf("unknown record kind %q", name),
			Params:  map[string]string{"kind": name},
		})
		return "", false
	}
	return kind, true
}

// decode reads a JSON request body into v, answering 400 when it is malformed
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.reject(w, http.StatusBadRequest, &recordservice.RemoteError{
			Code:    "bad_request",
			Message: "malformed request body: " + err.Error(),
		})
		return false
	}
	return true
}

// fail answers a service error. Rejections keep their code; anything else
// is a 500 without a body error so clients treat it as a transport failure.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if re, ok := recordservice.AsRemoteError(err); ok {
		s.reject(w, statusFor(re.Code), re)
		return
	}
	s.metrics.Failures.Add(1)
	s.logger.Error("record service failed", "operation", op, "error", err)
	s.write(w, http.StatusInternalServerError, recordservice.WireResponse{OK: false})
}

func (s *Server) reject(w http.ResponseWriter, status int, re *recordservice.RemoteError) {
	s.metrics.Rejections.Add(1)
	s.logger.Debug("request rejected", "code", re.Code, "message", re.Message)
	s.write(w, status, recordservice.WireResponse{OK: false, Error: recordservice.EncodeError(re)})
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "status", status, "error", err)
	}
}

// statusFor maps a rejection code to an HTTP status
func statusFor(code string) int {
	switch code {
	case recordservice.CodeNotFound:
		return http.StatusNotFound
	case recordservice.CodeForbidden:
		return http.StatusForbidden
	case recordservice.CodeDeleteBlockedStatus:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
