package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/poolexpert/concierge/internal/errors"
	"github.com/poolexpert/concierge/internal/models"
	"github.com/poolexpert/concierge/internal/relay"
	"github.com/poolexpert/concierge/internal/storage"
)

// Server exposes the chat relay and lead intake over HTTP.
type Server struct {
	svc    *relay.Service
	store  storage.Storage
	logger *zap.Logger
	dev    bool
}

// New wires the route handlers and middleware into an http.Handler.
func New(svc *relay.Service, store storage.Storage, logger *zap.Logger, dev bool) http.Handler {
	s := &Server{svc: svc, store: store, logger: logger, dev: dev}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/leads", s.handleLeads)
	mux.HandleFunc("/api/applications", s.handleApplications)
	mux.HandleFunc("/healthz", s.handleHealth)

	return chainMiddlewares(mux, withCORS, withLogging(logger))
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Messages []models.Message `json:"messages"`
}

type leadRequest struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	Budget          string `json:"budget"`
	ProjectType     string `json:"projectType"`
	Timeline        string `json:"timeline"`
	Notes           string `json:"notes"`
	ConversationLog string `json:"conversationLog"`
}

type leadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
}

type applicationRequest struct {
	CompanyName         string `json:"companyName"`
	ContactName         string `json:"contactName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Website             string `json:"website"`
	YearsInBusiness     string `json:"yearsInBusiness"`
	AverageProjectValue string `json:"averageProjectValue"`
	MonthlyLeads        string `json:"monthlyLeads"`
	BiggestChallenge    string `json:"biggestChallenge"`
	WhyInterested       string `json:"whyInterested"`
}

type applicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

type errorResponse struct {
	Error            string `json:"error"`
	TechnicalDetails string `json:"technicalDetails,omitempty"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewValidation("invalid JSON body"))
		return
	}

	stream, err := s.svc.Chat(r.Context(), req.Messages, callerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	for chunk := range stream {
		if _, err := io.WriteString(w, chunk); err != nil {
			// Client went away; the relay stops on context cancellation.
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewValidation("invalid JSON body"))
		return
	}
	if req.Email == "" && req.Phone == "" {
		s.writeError(w, apperrors.NewValidation("email or phone is required"))
		return
	}

	lead := &models.Lead{
		Email:           req.Email,
		Phone:           req.Phone,
		Name:            req.Name,
		Budget:          req.Budget,
		ProjectType:     req.ProjectType,
		Timeline:        req.Timeline,
		Notes:           req.Notes,
		ConversationLog: req.ConversationLog,
		Source:          models.LeadSourceChatWidget,
		Status:          "new",
	}

	id, err := s.store.SaveLead(r.Context(), lead)
	if err != nil {
		s.logger.Error("failed to save lead", zap.Error(err))
		s.writeError(w, apperrors.NewSinkWrite(err))
		return
	}

	writeJSON(w, http.StatusCreated, leadResponse{Success: true, LeadID: id})
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateApplication(w, r)
	case http.MethodGet:
		s.handleListApplications(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewValidation("invalid JSON body"))
		return
	}

	required := map[string]string{
		"companyName":         req.CompanyName,
		"contactName":         req.ContactName,
		"email":               req.Email,
		"phone":               req.Phone,
		"yearsInBusiness":     req.YearsInBusiness,
		"averageProjectValue": req.AverageProjectValue,
		"monthlyLeads":        req.MonthlyLeads,
		"biggestChallenge":    req.BiggestChallenge,
		"whyInterested":       req.WhyInterested,
	}
	for _, field := range []string{
		"companyName", "contactName", "email", "phone",
		"yearsInBusiness", "averageProjectValue", "monthlyLeads",
		"biggestChallenge", "whyInterested",
	} {
		if strings.TrimSpace(required[field]) == "" {
			s.writeError(w, apperrors.NewValidation("Missing required field: "+field))
			return
		}
	}

	app := &models.Application{
		CompanyName:         req.CompanyName,
		ContactName:         req.ContactName,
		Email:               req.Email,
		Phone:               req.Phone,
		Website:             req.Website,
		YearsInBusiness:     req.YearsInBusiness,
		AverageProjectValue: req.AverageProjectValue,
		MonthlyLeads:        req.MonthlyLeads,
		BiggestChallenge:    req.BiggestChallenge,
		WhyInterested:       req.WhyInterested,
		Status:              "pending",
	}

	id, err := s.store.SaveApplication(r.Context(), app)
	if err != nil {
		s.logger.Error("failed to save application", zap.Error(err))
		s.writeError(w, apperrors.NewSinkWrite(err))
		return
	}

	writeJSON(w, http.StatusCreated, applicationResponse{Success: true, ApplicationID: id})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.store.ListApplications(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.writeError(w, apperrors.NewSinkWrite(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// callerID derives the rate-limit key from the network origin.
func callerID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeError renders the JSON error envelope. Technical detail is only
// included when the server runs in dev mode.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "internal server error"}
	status := http.StatusInternalServerError

	if cErr, ok := err.(*apperrors.ChatError); ok {
		status = cErr.Status
		resp.Error = cErr.Message
		if s.dev && cErr.Cause != nil {
			resp.TechnicalDetails = cErr.Cause.Error()
		}
	} else if s.dev {
		resp.TechnicalDetails = err.Error()
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
