package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/session"
)

// contentHandler returns the handler for a preview_<kind> tool.
func (s *Server) contentHandler(kind payload.Kind) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError("missing required parameter: content"), nil
		}
		output := request.GetString("output", "")
		title := request.GetString("title", "")
		return s.render(kind, content, title, output), nil
	}
}

// handlePreviewFile renders a file from disk, choosing the viewer by extension.
func (s *Server) handlePreviewFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	kind, ok := payload.KindForPath(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Cannot preview %q: supported extensions are .csv, .json, .jsonl, .md and .diff.", path,
		)), nil
	}

	content, err := payload.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	output := request.GetString("output", "")
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		output = filepath.Join(s.opts.OutputDir, base+".html")
	}
	return s.render(kind, content, filepath.Base(path), output), nil
}

func (s *Server) render(kind payload.Kind, content, title, output string) *mcp.CallToolResult {
	x, err := session.Render(kind, content, title, s.opts.Theme, session.EngineOptions{
		DiffMode:    s.opts.DiffMode,
		ExpandFirst: s.opts.ExpandFirst,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err))
	}

	if output == "" {
		output = filepath.Join(s.opts.OutputDir, fmt.Sprintf("%s-%s.html", kind, uuid.NewString()[:8]))
	}
	if err := x.WriteFile(output); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write page: %v", err))
	}

	return mcp.NewToolResultText(formatResult(x, output))
}

// formatResult describes a written page for agent consumption.
func formatResult(x *session.Export, path string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Preview written to %s\n", path))
	sb.WriteString(fmt.Sprintf("Kind: %s\n", x.Kind))
	sb.WriteString(fmt.Sprintf("Title: %s\n", x.Title))
	sb.WriteString(fmt.Sprintf("Stats: %s\n", x.Stats))
	return sb.String()
}
