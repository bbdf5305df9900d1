// Package mcp exposes the preview renderers as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/payload"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options configures the rendered pages.
type Options struct {
	// OutputDir receives pages for calls that name no output path.
	OutputDir   string
	Theme       string
	DiffMode    diff.Mode
	ExpandFirst int
}

// Server wraps an MCP server that renders preview pages.
type Server struct {
	opts Options
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server writing pages according to opts.
func NewServer(opts Options) *Server {
	if opts.OutputDir == "" {
		opts.OutputDir = "previews"
	}
	s := &Server{opts: opts}

	s.mcp = server.NewMCPServer(
		"previewkit",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(previewCSVTool, s.contentHandler(payload.KindCSV))
	s.mcp.AddTool(previewJSONTool, s.contentHandler(payload.KindJSON))
	s.mcp.AddTool(previewMarkdownTool, s.contentHandler(payload.KindMarkdown))
	s.mcp.AddTool(previewDiffTool, s.contentHandler(payload.KindDiff))
	s.mcp.AddTool(previewPlanTool, s.contentHandler(payload.KindPlan))
	s.mcp.AddTool(previewFileTool, s.handlePreviewFile)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
