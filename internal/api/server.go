package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"lexsim/internal/domain"
	"lexsim/internal/service"
)

// Assistant is the subset of the service the API exposes.
type Assistant interface {
	Ask(query string) string
	Matches(query string, topK int) ([]domain.Match, error)
	Summarize(text string, sentences int) (string, error)
	Status() service.Status
}

type Server struct {
	Assistant    Assistant
	Logger       *logrus.Entry
	Router       *http.ServeMux
	MaxBodyBytes int64
}

func NewServer(assistant Assistant, logger *logrus.Entry, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	s := &Server{
		Assistant:    assistant,
		Logger:       logger.WithField("component", "api"),
		Router:       http.NewServeMux(),
		MaxBodyBytes: maxBodyBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/ask", s.handleAsk)
	s.Router.HandleFunc("/api/v1/matches", s.handleMatches)
	s.Router.HandleFunc("/api/v1/summarize", s.handleSummarize)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
	s.Router.HandleFunc("/health", s.handleHealth)
}

// Handler returns the router wrapped with request ID tagging and access logging.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.Router)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Logger.Info("Shutting down API Server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type AskResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

type MatchView struct {
	Index    int     `json:"index"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

type MatchesResponse struct {
	Query   string      `json:"query"`
	Matches []MatchView `json:"matches"`
}

type SummarizeRequest struct {
	Text      string `json:"text"`
	Sentences int    `json:"sentences"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// Handlers

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	query := r.URL.Query().Get("q")
	jsonResponse(w, http.StatusOK, AskResponse{Query: query, Answer: s.Assistant.Ask(query)})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}
	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "'k' must be a positive integer"})
			return
		}
		k = v
	}

	matches, err := s.Assistant.Matches(query, k)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNoCorpus) {
			status = http.StatusServiceUnavailable
		}
		jsonResponse(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	resp := MatchesResponse{Query: query, Matches: make([]MatchView, len(matches))}
	for i, m := range matches {
		resp.Matches[i] = MatchView{
			Index:    m.Entry.Index,
			Question: m.Entry.Question,
			Answer:   m.Entry.Answer,
			Score:    m.Score,
		}
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Text == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "'text' is required"})
		return
	}

	summary, err := s.Assistant.Summarize(req.Text, req.Sentences)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		jsonResponse(w, status, ErrorResponse{Error: err.Error()})
		return
	}
	jsonResponse(w, http.StatusOK, SummarizeResponse{Summary: summary})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, http.StatusOK, s.Assistant.Status())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
