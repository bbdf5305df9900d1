package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/previewkit/internal/db"
	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/payload"
)

func setupServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(cfg, database)
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func create(t *testing.T, srv *Server, kind, title, content string) string {
	t.Helper()
	w := do(t, srv, "POST", "/api/previews", map[string]string{
		"kind":    kind,
		"title":   title,
		"payload": payload.Encode(content),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.URL != "/p/"+resp.ID {
		t.Errorf("url = %q", resp.URL)
	}
	return resp.ID
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, Config{})

	w := do(t, srv, "GET", "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupServer(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPreviewCRUD(t *testing.T) {
	srv := setupServer(t, Config{})
	id := create(t, srv, "json", "config", `{"debug":true}`)

	w := do(t, srv, "GET", "/api/previews/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}
	var got map[string]any
	json.Unmarshal(w.Body.Bytes(), &got)
	if got["content"] != `{"debug":true}` || got["kind"] != "json" {
		t.Errorf("get = %v", got)
	}

	w = do(t, srv, "GET", "/api/previews?kind=json", nil)
	var list []map[string]any
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0]["id"] != id {
		t.Errorf("list = %v", list)
	}

	w = do(t, srv, "GET", "/api/previews?kind=csv", nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("filtered list = %s", w.Body.String())
	}

	if w := do(t, srv, "DELETE", "/api/previews/"+id, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", w.Code)
	}
	if w := do(t, srv, "GET", "/api/previews/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d", w.Code)
	}
	if w := do(t, srv, "DELETE", "/api/previews/"+id, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	srv := setupServer(t, Config{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad base64", map[string]string{"kind": "csv", "payload": "!!!"}},
		{"unknown kind", map[string]string{"kind": "yaml", "content": "a: 1"}},
		{"no kind", map[string]string{"content": "a,b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, srv, "POST", "/api/previews", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
		})
	}

	w := do(t, srv, "POST", "/api/previews", map[string]string{"source": "notes/readme.md", "content": "# hi"})
	if w.Code != http.StatusCreated {
		t.Errorf("kind from source: status %d: %s", w.Code, w.Body.String())
	}
}

func TestPage(t *testing.T) {
	srv := setupServer(t, Config{Theme: "dark"})
	id := create(t, srv, "csv", "people", "name,age\nalice,30\n")

	w := do(t, srv, "GET", "/p/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	html := w.Body.String()
	for _, want := range []string{
		`data-socket="/ws/previews/` + id + `"`,
		`data-theme="dark"`,
		"people · CSV Viewer",
		"alice",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if w := do(t, srv, "GET", "/p/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing page: status %d", w.Code)
	}
}

func TestIndex(t *testing.T) {
	srv := setupServer(t, Config{})
	create(t, srv, "markdown", "Release notes", "# v1")

	w := do(t, srv, "GET", "/", nil)
	if !strings.Contains(w.Body.String(), "Release notes") {
		t.Errorf("index missing preview: %s", w.Body.String())
	}
}

func TestSocket(t *testing.T) {
	srv := setupServer(t, Config{})
	id := create(t, srv, "csv", "", "name,age\nalice,30\nbob,25\n")

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/previews/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "search", "query": "bob"}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var patches []dom.Patch
	if err := conn.ReadJSON(&patches); err != nil {
		t.Fatalf("read: %v", err)
	}

	var stats string
	for _, p := range patches {
		if p.Op == dom.OpReplace && p.Target == ".preview-header-stats" {
			stats = p.HTML
		}
	}
	if stats != "1 of 2 rows × 2 columns" {
		t.Errorf("stats = %q, patches = %+v", stats, patches)
	}

	deadline := time.Now().Add(2 * time.Second)
	for srv.Sessions().Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("session not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSocketUnknownPreview(t *testing.T) {
	srv := setupServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/previews/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("resp = %v", resp)
	}
}
