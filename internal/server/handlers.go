package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-cv/internal/chat"
	"github.com/jonathan/portfolio-cv/internal/contact"
	"github.com/jonathan/portfolio-cv/internal/portfolio"
	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/types"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/index.html"))

// indexPage is the data rendered by the index template
type indexPage struct {
	*types.Portfolio
	Filename    string
	Categories  []string
	ChatEnabled bool
}

// ProjectsResponse represents the response for GET /api/projects
type ProjectsResponse struct {
	Category   string               `json:"category"`
	Categories []string             `json:"categories"`
	Projects   []types.ProjectEntry `json:"projects"`
}

// ChatResponse represents the response for POST /api/chat. Reply is set on failures too,
// with the text to show in place of an answer.
type ChatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// ContactResponse represents the response for POST /api/contact
type ContactResponse struct {
	Mailto  string `json:"mailto"`
	Subject string `json:"subject"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIndex renders the portfolio summary page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexPage{
		Portfolio:   s.portfolio,
		Filename:    rendering.OutputFilename(s.portfolio.Profile.Name),
		Categories:  portfolio.Categories(s.portfolio.Projects),
		ChatEnabled: s.assistant != nil,
	})
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to render page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleCV composes the CV for each request and serves it as a download
func (s *Server) handleCV(w http.ResponseWriter, r *http.Request) {
	data, stats, err := s.composer.Bytes(s.portfolio)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	filename := rendering.OutputFilename(s.portfolio.Profile.Name)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-CV-Pages", strconv.Itoa(stats.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write CV", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
	}
}

// handlePortfolio returns the portfolio data
func (s *Server) handlePortfolio(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.portfolio)
}

// handleProjects returns the projects in the requested category
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = portfolio.AllCategories
	}
	projects := portfolio.FilterProjects(s.portfolio.Projects, category)
	if projects == nil {
		projects = []types.ProjectEntry{}
	}
	s.jsonResponse(w, http.StatusOK, ProjectsResponse{
		Category:   category,
		Categories: portfolio.Categories(s.portfolio.Projects),
		Projects:   projects,
	})
}

// handleChat relays the conversation to the assistant
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "chat", Reason: "no API key configured"})
		return
	}

	var req chat.Request
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	reply, err := s.assistant.Reply(r.Context(), req)
	if err != nil {
		var replyErr *chat.ReplyError
		if errors.As(err, &replyErr) {
			code := "assistant_unavailable"
			if replyErr.Quota {
				code = "quota_exceeded"
			}
			s.jsonResponse(w, HTTPStatus(err), ChatResponse{Reply: replyErr.Reply, Error: code})
			return
		}
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ChatResponse{Reply: reply})
}

// handleContact validates an inquiry and returns the mail link that sends it
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	to := s.contactAddress()
	if to == "" {
		s.handleError(w, r, &ErrUnavailable{Feature: "contact", Reason: "no contact address configured"})
		return
	}
	if err := contact.ValidateRecipient(to); err != nil {
		s.logger.Error("contact address is misconfigured", zap.String("address", to), zap.Error(err))
		s.handleError(w, r, &ErrUnavailable{Feature: "contact", Reason: "contact address is misconfigured"})
		return
	}

	var inquiry contact.Inquiry
	if err := s.decodeJSON(w, r, &inquiry); err != nil {
		s.handleError(w, r, err)
		return
	}

	link, err := contact.MailtoLink(to, inquiry)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ContactResponse{Mailto: link, Subject: inquiry.Subject()})
}

// decodeJSON reads a single JSON object from the request body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// handleError logs server-side failures and writes err as a JSON error response
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request error",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	s.errorResponse(w, status, message)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
