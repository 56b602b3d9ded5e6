// Package http is the thin JSON wrapper the presentation layer talks to.
// Every endpoint is one synchronous pass: parse, call the board, render.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"spendboard/internal/log"
	"spendboard/internal/middleware/trace"
	"spendboard/internal/services"
)

type Server struct {
	http.Server
	board  *services.Board
	topN   int
	trace  *trace.Middleware
	logger *log.Logger
}

// NewServer wires the routes. topN is the leaderboard size used when a
// request does not carry its own limit.
func NewServer(addr string, board *services.Board, topN int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentHTTP})
	} else {
		logger = logger.WithComponent(log.ComponentHTTP)
	}
	s := &Server{
		board:  board,
		topN:   topN,
		trace:  trace.NewMiddleware(),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/export", s.handleExport)

	s.Addr = addr
	s.Handler = s.trace.Wrap(mux)
	return s
}

// HTTPHandler exposes the routed handler for tests.
func (s *Server) HTTPHandler() http.Handler {
	return s.Server.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldError, err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorResponse{Error: code, Detail: detail})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return false
	}
	return true
}
