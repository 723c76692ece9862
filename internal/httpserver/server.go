// Package httpserver exposes the read side of the project store over HTTP.
// Every /api route requires a bearer token whose email claim names a known
// user; that user's contractor scope bounds what the route returns.
package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Services are the use cases the API serves.
type Services struct {
	Query  app.QueryUseCase
	Status app.StatusUseCase
	Export app.ExportUseCase
}

type Config struct {
	Addr      string
	JWTSecret string
	// Location decides calendar days of date parameters. Nil means
	// time.Local.
	Location *time.Location
}

type Server struct {
	svc    Services
	secret string
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
	srv    *http.Server
}

type Option func(*Server)

// WithClock overrides the request clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = logging.OrNop(l) }
}

func New(cfg Config, svc Services, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		secret: cfg.JWTSecret,
		loc:    cfg.Location,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	s.handle(mux, "GET /metrics", promhttp.Handler())

	s.handle(mux, "GET /api/projects", s.requireUser(http.HandlerFunc(s.listProjects)))
	s.handle(mux, "GET /api/status", s.requireUser(http.HandlerFunc(s.status)))
	s.handle(mux, "GET /api/export", s.requireUser(http.HandlerFunc(s.exportReport)))
	s.handle(mux, "GET /api/export/template", s.requireUser(http.HandlerFunc(s.exportTemplate)))

	return mux
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, instrument(pattern, s.logger, h))
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.srv.Shutdown(ctx)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	resp, err := s.svc.Query.ListProjects(r.Context(), app.QueryRequest{
		Now:       &now,
		UserEmail: emailFrom(r.Context()),
		Criteria:  criteria,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListJSON(resp, now))
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	resp, err := s.svc.Status.GetStatus(r.Context(), app.StatusRequest{
		Now:       &now,
		UserEmail: emailFrom(r.Context()),
		Criteria:  criteria,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusBoardJSON(resp))
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	var buf bytes.Buffer
	res, err := s.svc.Export.Export(r.Context(), app.ExportRequest{
		Now:       &now,
		UserEmail: emailFrom(r.Context()),
		Criteria:  criteria,
	}, &buf)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeWorkbook(w, res.FileName, buf.Bytes())
}

func (s *Server) exportTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	res, err := s.svc.Export.ExportTemplate(r.Context(), &buf)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeWorkbook(w, res.FileName, buf.Bytes())
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrUnknownUser) {
		writeError(w, http.StatusForbidden, "no access")
		return
	}
	s.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeWorkbook(w http.ResponseWriter, name string, body []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
