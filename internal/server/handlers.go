package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/session"
	"github.com/ziadkadry99/previewkit/internal/store"
)

// maxPayload bounds request bodies on preview creation.
const maxPayload = 32 << 20

// createRequest is the body of POST /api/previews. Payload is the base64
// form of the content; Content may carry plain text instead.
type createRequest struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Payload string `json:"payload"`
	Content string `json:"content"`
}

type createResponse struct {
	*store.Preview
	URL string `json:"url"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayload)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	kind, err := resolveKind(req.Kind, req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content := req.Content
	if req.Payload != "" {
		content, err = payload.Decode(req.Payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	p, err := s.store.Create(r.Context(), store.Preview{
		Kind:    kind,
		Title:   req.Title,
		Source:  req.Source,
		Content: content,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.Content = ""
	writeJSON(w, http.StatusCreated, createResponse{Preview: p, URL: "/p/" + p.ID})
}

func resolveKind(kind, source string) (payload.Kind, error) {
	if kind != "" {
		return payload.ParseKind(kind)
	}
	if k, ok := payload.KindForPath(source); ok {
		return k, nil
	}
	return "", errors.New("kind is required when it cannot be inferred from source")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ListFilter{
		Kind:  payload.Kind(q.Get("kind")),
		Query: q.Get("q"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	previews, err := s.store.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if previews == nil {
		previews = []store.Preview{}
	}
	writeJSON(w, http.StatusOK, previews)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preview not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	records, err := s.store.Sessions(r.Context(), p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.SessionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handlePage serves the interactive page. Its initial markup is the same
// first render a new session will start from.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc, err := session.Snapshot(p.Kind, p.Content, session.EngineOptions{
		DiffMode:    diff.Mode(s.cfg.DiffMode),
		ExpandFirst: s.cfg.ExpandFirst,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if p.Title != "" {
		doc.Title = p.Title + " · " + doc.Title
	}
	doc.Socket = "/ws/previews/" + p.ID
	doc.Theme = s.cfg.Theme

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Write(w, doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleIndex lists stored previews.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	previews, err := s.store.List(r.Context(), store.ListFilter{Limit: 200})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries := make([]page.IndexEntry, 0, len(previews))
	for _, p := range previews {
		name := p.Title
		if name == "" {
			name = p.Source
		}
		if name == "" {
			name = p.ID
		}
		entries = append(entries, page.IndexEntry{Name: name, Href: "/p/" + p.ID, Kind: string(p.Kind)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Write(w, page.Document{
		Title:   "previewkit",
		Kind:    "index",
		Theme:   s.cfg.Theme,
		Content: page.Index(entries, "No previews stored yet"),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Preview, bool) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preview not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
