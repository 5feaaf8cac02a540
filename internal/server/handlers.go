package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"summarist/internal/prompt"
	"summarist/internal/summarize"
	"summarist/internal/summary"
)

type conversationResponse struct {
	Conversation summary.Snapshot `json:"conversation"`
	Version      summary.Version  `json:"version"`
	Cursor       int              `json:"cursor"`
}

type versionResponse struct {
	Version summary.Version `json:"version"`
	Cursor  int             `json:"cursor"`
	Moved   *bool           `json:"moved,omitempty"`
}

// POST /api/conversations — multipart upload starting a new session.
// Fields: document (file), size (short|medium|long), instructions (optional).
func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(summarize.MaxDocumentBytes + 1<<20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "document file is required"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, summarize.MaxDocumentBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "failed to read document"})
		return
	}

	size := prompt.Size(strings.TrimSpace(r.FormValue("size")))
	if size == "" {
		size = prompt.SizeMedium
	}
	if !size.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "size must be short, medium, or long"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(ext)
	}
	doc := summarize.Document{
		Meta: summary.DocumentMeta{
			Name:      header.Filename,
			SizeBytes: int64(len(data)),
			Extension: ext,
			MIMEType:  mimeType,
		},
		Data: data,
	}

	snap, v, err := s.mgr.Generate(r.Context(), doc, size, r.FormValue("instructions"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conversationResponse{Conversation: snap, Version: v, Cursor: 0})
}

// handleConversation dispatches /api/conversations/{id}[/action].
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/conversations/")
	id, action, _ := strings.Cut(rest, "/")
	id = strings.TrimSpace(id)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "conversation id is required"})
		return
	}

	switch action {
	case "":
		s.getConversation(w, r, id)
	case "refine":
		s.refine(w, r, id)
	case "undo":
		s.undo(w, r, id)
	case "redo":
		s.redo(w, r, id)
	case "jump":
		s.jump(w, r, id)
	case "statistics":
		s.statistics(w, r, id)
	case "compare":
		s.compare(w, r, id)
	case "archive":
		s.archiveConversation(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	snap, err := s.mgr.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cursor, v, err := s.mgr.Current(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversationResponse{Conversation: snap, Version: v, Cursor: cursor})
}

func (s *Server) refine(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Intent   string `json:"intent"`
		Feedback string `json:"feedback,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}
	intent := prompt.Intent(strings.TrimSpace(in.Intent))
	if !intent.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown refinement intent"})
		return
	}
	v, cursor, err := s.mgr.Refine(r.Context(), id, intent, in.Feedback)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versionResponse{Version: v, Cursor: cursor})
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cursor, v, err := s.mgr.Undo(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versionResponse{Version: v, Cursor: cursor})
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cursor, v, err := s.mgr.Redo(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versionResponse{Version: v, Cursor: cursor})
}

func (s *Server) jump(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Target int `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}
	cursor, moved, v, err := s.mgr.JumpTo(id, in.Target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versionResponse{Version: v, Cursor: cursor, Moved: &moved})
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st, err := s.mgr.Stats(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GET .../compare?from=0&to=2 — indices into the version sequence.
func (s *Server) compare(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	from, err1 := parseIndex(r.URL.Query().Get("from"))
	to, err2 := parseIndex(r.URL.Query().Get("to"))
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "from and to must be version indices"})
		return
	}
	d, err := s.mgr.Compare(id, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) archiveConversation(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.archive == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "archive is not configured"})
		return
	}
	snap, err := s.mgr.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.archive.Save(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"archived": true, "conversationId": id})
}

// POST /api/restore — reload an archived conversation into a live session.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.archive == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "archive is not configured"})
		return
	}
	var in struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.ConversationID) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "conversationId is required"})
		return
	}
	snap, ok, err := s.archive.Load(r.Context(), in.ConversationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "conversation not found in archive"})
		return
	}
	id, err := s.mgr.Restore(snap)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cursor, v, err := s.mgr.Current(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversationResponse{Conversation: snap, Version: v, Cursor: cursor})
}

func parseIndex(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
