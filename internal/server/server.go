// Package server exposes the summarization core over HTTP/JSON plus a
// websocket event feed.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"summarist/internal/archive"
	"summarist/internal/llm"
	"summarist/internal/prompt"
	"summarist/internal/session"
	"summarist/internal/summarize"
	"summarist/internal/summary"
)

type Server struct {
	mgr     *session.Manager
	archive *archive.Store
	log     *log.Logger
}

func New(mgr *session.Manager, arch *archive.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{mgr: mgr, archive: arch, log: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/conversations", s.handleConversations)
	mux.HandleFunc("/api/conversations/", s.handleConversation)
	mux.HandleFunc("/api/restore", s.handleRestore)
	mux.HandleFunc("/api/watch", s.handleWatchWS)
	return withCORS(mux)
}

// Simple CORS middleware, mirrors what the frontend dev server needs.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors to status codes. Remote failures surface the
// adapter's message unchanged; it is already user-legible at this layer.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, summarize.ErrNoSummaryToRefine),
		errors.Is(err, summary.ErrAtBoundary):
		status = http.StatusConflict
	case errors.Is(err, summary.ErrOutOfRange),
		errors.Is(err, session.ErrEmptySnapshot),
		errors.Is(err, prompt.ErrInstructionsTooShort),
		errors.Is(err, prompt.ErrInstructionsTooLong),
		errors.Is(err, prompt.ErrProhibitedPattern):
		status = http.StatusBadRequest
	case errors.Is(err, summarize.ErrDocumentTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, summarize.ErrEmptyDocument):
		status = http.StatusBadRequest
	case errors.Is(err, summarize.ErrCancelled):
		status = 499 // client closed request
	default:
		var attErr *llm.AttemptsError
		if errors.As(err, &attErr) {
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
