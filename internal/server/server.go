// Package server exposes the profile loader as an admin HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/export"
	"github.com/sells-group/tradelens/internal/profile"
)

// ProfileLoader loads an aggregated profile for a company.
type ProfileLoader interface {
	Load(ctx context.Context, companyID, hsPrefix string) (*profile.Profile, error)
}

// BriefGenerator produces a narrative brief for a profile. Optional: a nil
// generator makes the brief endpoint answer 501.
type BriefGenerator interface {
	Generate(ctx context.Context, p *profile.Profile) (string, error)
}

// Authorizer decides whether a request may read a company's profile.
// Authentication lives outside this service; the default allows everything.
type Authorizer interface {
	Authorize(r *http.Request, companyID string) error
}

// AuditRecorder records profile reads for compliance review. The default
// discards them.
type AuditRecorder interface {
	RecordAccess(ctx context.Context, companyID, requestID string)
}

type allowAll struct{}

func (allowAll) Authorize(*http.Request, string) error { return nil }

type noAudit struct{}

func (noAudit) RecordAccess(context.Context, string, string) {}

// Server is the admin HTTP API.
type Server struct {
	loader ProfileLoader
	brief  BriefGenerator
	auth   Authorizer
	audit  AuditRecorder
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAuthorizer installs a request authorizer.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Server) { s.auth = a }
}

// WithAuditRecorder installs an access recorder.
func WithAuditRecorder(a AuditRecorder) Option {
	return func(s *Server) { s.audit = a }
}

// WithBriefGenerator enables the brief endpoint.
func WithBriefGenerator(g BriefGenerator) Option {
	return func(s *Server) { s.brief = g }
}

// New builds the server and its routes.
func New(loader ProfileLoader, corsOrigins []string, opts ...Option) *Server {
	s := &Server{
		loader: loader,
		auth:   allowAll{},
		audit:  noAudit{},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/companies/{companyID}", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)
		r.Get("/profile/export", s.handleExport)
		r.Post("/brief", s.handleBrief)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	}
}

type ctxKey int

const requestIDKey ctxKey = 0

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "profile-"+p.CompanyID+".xlsx"))
	if err := export.WriteWorkbook(p, w); err != nil {
		zap.L().Error("export failed",
			zap.String("company_id", p.CompanyID),
			zap.Error(err),
		)
	}
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	if s.brief == nil {
		writeError(w, http.StatusNotImplemented, "brief generation is not configured")
		return
	}

	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	text, err := s.brief.Generate(r.Context(), p)
	if err != nil {
		zap.L().Error("brief failed", zap.String("company_id", p.CompanyID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "unable to generate brief right now")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"company_id": p.CompanyID, "brief": text})
}

// loadProfile handles the shared path parsing, authorization, loading, and
// error mapping. It reports whether the caller may proceed.
func (s *Server) loadProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	companyID := chi.URLParam(r, "companyID")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company id")
		return nil, false
	}

	if err := s.auth.Authorize(r, companyID); err != nil {
		writeError(w, http.StatusForbidden, "not authorized for this company")
		return nil, false
	}

	s.audit.RecordAccess(r.Context(), companyID, requestIDFrom(r.Context()))

	p, err := s.loader.Load(r.Context(), companyID, r.URL.Query().Get("hs"))
	if err != nil {
		status, msg := mapLoadError(err)
		if status >= http.StatusInternalServerError {
			zap.L().Error("profile load failed",
				zap.String("company_id", companyID),
				zap.String("request_id", requestIDFrom(r.Context())),
				zap.Error(err),
			)
		}
		writeError(w, status, msg)
		return nil, false
	}
	return p, true
}

// mapLoadError maps loader sentinels onto user-facing statuses and messages.
func mapLoadError(err error) (int, string) {
	switch {
	case eris.Is(err, profile.ErrNoProfileData):
		return http.StatusNotFound, profile.ErrNoProfileData.Error()
	case eris.Is(err, profile.ErrSourceNotConfigured):
		return http.StatusServiceUnavailable, profile.ErrSourceNotConfigured.Error()
	case eris.Is(err, profile.ErrSourceUnavailable):
		return http.StatusBadGateway, profile.ErrSourceUnavailable.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
