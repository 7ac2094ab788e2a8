// Package api implements the inbound HTTP edge: a JSON message endpoint,
// the Twilio SMS webhook, and link collateral.
package api

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m10dj/sms-agent/internal/agents"
	"github.com/m10dj/sms-agent/internal/buildinfo"
	"github.com/m10dj/sms-agent/internal/exchanges"
	"github.com/m10dj/sms-agent/internal/links"
)

// writeJSON encodes v as JSON to w, logging any errors at debug level.
// Errors here typically mean the client disconnected mid-response.
func writeJSON(w http.ResponseWriter, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("failed to write JSON response", "error", err)
	}
}

// ExchangeReader serves the audit-trail endpoint.
type ExchangeReader interface {
	Recent(phoneNumber string, limit int) ([]*exchanges.Record, error)
}

// Server is the HTTP edge.
type Server struct {
	address  string
	port     int
	workflow *agents.Workflow
	history  ExchangeReader
	fallback string
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates the HTTP edge over the message workflow. fallback is
// the reply used when the webhook cannot even parse the request.
func NewServer(address string, port int, workflow *agents.Workflow, history ExchangeReader, fallback string, logger *slog.Logger) *Server {
	return &Server{
		address:  address,
		port:     port,
		workflow: workflow,
		history:  history,
		fallback: fallback,
		logger:   logger,
	}
}

// Start begins serving HTTP requests. It blocks until the listener fails
// or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/sms", s.handleMessage)
	mux.HandleFunc("GET /v1/sms/{phone}/history", s.handleHistory)
	mux.HandleFunc("POST /webhooks/sms", s.handleTwilioWebhook)
	mux.HandleFunc("GET /v1/links/qr", s.handleLinkQR)

	mux.HandleFunc("GET /v1/version", s.handleVersion)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // the workflow can run several tool rounds
	}

	addr := s.address
	if addr == "" {
		addr = "0.0.0.0"
	}
	s.logger.Info("starting API server", "address", addr, "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) errorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, map[string]any{"error": message}, s.logger)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{"service": "smsagent", "version": buildinfo.Version}, s.logger)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, buildinfo.Info(), s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "uptime": buildinfo.Uptime().String()}, s.logger)
}

// handleMessage runs one message through the workflow. The response body
// always carries sendable text; success=false means the fallback reply.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req agents.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || strings.TrimSpace(req.Message) == "" {
		s.errorResponse(w, http.StatusBadRequest, "phone_number and message are required")
		return
	}

	resp := s.workflow.Process(r.Context(), req)
	writeJSON(w, resp, s.logger)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.errorResponse(w, http.StatusNotFound, "history not available")
		return
	}
	records, err := s.history.Recent(r.PathValue("phone"), 20)
	if err != nil {
		s.logger.Error("history lookup failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "history lookup failed")
		return
	}
	writeJSON(w, map[string]any{"exchanges": records}, s.logger)
}

// twiml is the minimal response document Twilio expects back from an SMS
// webhook.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// handleTwilioWebhook accepts Twilio's form-encoded SMS delivery and
// answers TwiML. It always returns 200: a non-2xx status makes the
// carrier retry the same message, and a retry cannot go better than the
// fallback reply.
func (s *Server) handleTwilioWebhook(w http.ResponseWriter, r *http.Request) {
	reply := s.fallback

	if err := r.ParseForm(); err != nil {
		s.logger.Error("webhook form parse failed", "error", err)
	} else {
		from := strings.TrimSpace(r.PostFormValue("From"))
		body := strings.TrimSpace(r.PostFormValue("Body"))
		if from == "" || body == "" {
			s.logger.Warn("webhook missing From or Body")
		} else {
			resp := s.workflow.Process(r.Context(), agents.Request{
				PhoneNumber: from,
				Message:     body,
			})
			reply = resp.OutputText
		}
	}

	w.Header().Set("Content-Type", "text/xml")
	out, err := xml.Marshal(twiml{Message: reply})
	if err != nil {
		s.logger.Error("twiml encode failed", "error", err)
		return
	}
	w.Write([]byte(xml.Header))
	w.Write(out)
}

// handleLinkQR renders a service-selection link as a PNG QR code for
// print collateral.
func (s *Server) handleLinkQR(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		s.errorResponse(w, http.StatusBadRequest, "link query parameter is required")
		return
	}

	png, err := links.QRPNG(link, 256)
	if err != nil {
		s.logger.Error("qr render failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "could not render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
