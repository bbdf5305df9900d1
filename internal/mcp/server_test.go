package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/previewkit/internal/payload"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"preview_csv", previewCSVTool, "preview_csv"},
		{"preview_json", previewJSONTool, "preview_json"},
		{"preview_markdown", previewMarkdownTool, "preview_markdown"},
		{"preview_diff", previewDiffTool, "preview_diff"},
		{"preview_plan", previewPlanTool, "preview_plan"},
		{"preview_file", previewFileTool, "preview_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(Options{})
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.opts.OutputDir != "previews" {
		t.Errorf("OutputDir = %q, want %q", srv.opts.OutputDir, "previews")
	}
}

func TestPreviewCSV(t *testing.T) {
	dir := t.TempDir()
	srv := NewServer(Options{OutputDir: dir, Theme: "dark"})
	ctx := context.Background()

	t.Run("explicit output", func(t *testing.T) {
		out := filepath.Join(dir, "people.html")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"content": "name,age\nalice,30\nbob,25\n",
			"output":  out,
			"title":   "people",
		}

		result, err := srv.contentHandler(payload.KindCSV)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		if !strings.Contains(text, out) || !strings.Contains(text, "2 rows × 2 columns") {
			t.Errorf("unexpected result text:\n%s", text)
		}
		if !strings.Contains(text, "Title: people · CSV Viewer") {
			t.Errorf("missing title in result:\n%s", text)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("page not written: %v", err)
		}
		if !strings.Contains(string(data), `data-theme="dark"`) {
			t.Error("page should carry the configured theme")
		}
	})

	t.Run("default output", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"content": "a\n1\n"}

		result, err := srv.contentHandler(payload.KindCSV)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		matches, _ := filepath.Glob(filepath.Join(dir, "csv-*.html"))
		if len(matches) != 1 {
			t.Errorf("expected one generated page, got %v", matches)
		}
	})

	t.Run("missing content", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.contentHandler(payload.KindCSV)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for missing content")
		}
	})
}

func TestPreviewDiffAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	srv := NewServer(Options{OutputDir: dir})
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"content": "diff --git a/x.txt b/x.txt\n--- a/x.txt\n+++ b/x.txt\n@@ -1 +1 @@\n-old\n+new\n",
		"output":  filepath.Join(dir, "change.html"),
	}
	result, err := srv.contentHandler(payload.KindDiff)(ctx, req)
	if err != nil || result.IsError {
		t.Fatalf("diff render failed: %v %v", err, result.Content)
	}
	if text := resultText(t, result); !strings.Contains(text, "1 file changed • +1 additions • -1 deletions") {
		t.Errorf("unexpected diff stats:\n%s", text)
	}

	req.Params.Arguments = map[string]any{
		"content": "# Title\n\n```mermaid\ngraph TD\n```\n",
		"output":  filepath.Join(dir, "doc.html"),
	}
	result, err = srv.contentHandler(payload.KindMarkdown)(ctx, req)
	if err != nil || result.IsError {
		t.Fatalf("markdown render failed: %v %v", err, result.Content)
	}
	data, err := os.ReadFile(filepath.Join(dir, "doc.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "mermaid.min.js") {
		t.Error("markdown page with a diagram should load mermaid")
	}
}

func TestPreviewPlan(t *testing.T) {
	dir := t.TempDir()
	srv := NewServer(Options{OutputDir: dir})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"content": "# Rollout\n\n## Prepare\n\n- [x] freeze\n- [ ] tag\n\n## Ship\n\ndeploy it\n",
		"output":  filepath.Join(dir, "plan.html"),
	}
	result, err := srv.contentHandler(payload.KindPlan)(context.Background(), req)
	if err != nil || result.IsError {
		t.Fatalf("plan render failed: %v %v", err, result.Content)
	}
	if text := resultText(t, result); !strings.Contains(text, "2 sections • ") {
		t.Errorf("unexpected plan stats:\n%s", text)
	}
	data, err := os.ReadFile(filepath.Join(dir, "plan.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`href="#prepare"`, "☑ 1/2 tasks", "Rollout"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("plan page missing %q", want)
		}
	}
}

func TestPreviewFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "config.json")
	if err := os.WriteFile(src, []byte(`{"name":"demo","tags":["a","b"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(Options{OutputDir: filepath.Join(dir, "out")})
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": src}
	result, err := srv.handlePreviewFile(ctx, req)
	if err != nil || result.IsError {
		t.Fatalf("preview_file failed: %v %v", err, result.Content)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "config.html")); err != nil {
		t.Errorf("expected page next to output dir: %v", err)
	}

	t.Run("unsupported extension", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": filepath.Join(dir, "image.png")}
		result, err := srv.handlePreviewFile(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for unsupported extension")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": filepath.Join(dir, "gone.csv")}
		result, err := srv.handlePreviewFile(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for missing file")
		}
	})
}
