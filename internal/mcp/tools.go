package mcp

import "github.com/mark3labs/mcp-go/mcp"

func contentTool(name, description, contentHelp string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description(contentHelp),
		),
		mcp.WithString("output",
			mcp.Description("Path of the HTML file to write (default: a new file in the output directory)"),
		),
		mcp.WithString("title",
			mcp.Description("Document title shown in the browser tab"),
		),
	)
}

// previewCSVTool defines the preview_csv MCP tool.
var previewCSVTool = contentTool("preview_csv",
	"Render CSV text as an interactive table page with search, sorting and JSON export. Returns the page path and row/column stats.",
	"Raw CSV text; the first line is the header row",
)

// previewJSONTool defines the preview_json MCP tool.
var previewJSONTool = contentTool("preview_json",
	"Render JSON or JSON Lines text as a collapsible tree page. Returns the page path and stats.",
	"A JSON document, or one JSON value per line",
)

// previewMarkdownTool defines the preview_markdown MCP tool.
var previewMarkdownTool = contentTool("preview_markdown",
	"Render GitHub-flavoured Markdown, including mermaid diagrams, as a page. Returns the page path and stats.",
	"Markdown source",
)

// previewDiffTool defines the preview_diff MCP tool.
var previewDiffTool = contentTool("preview_diff",
	"Render a git unified diff as a page with per-file collapsing and split view. Returns the page path and change stats.",
	"Output of git diff",
)

// previewPlanTool defines the preview_plan MCP tool.
var previewPlanTool = contentTool("preview_plan",
	"Render a Markdown implementation plan as a page with a table of contents, task progress and reading time. Returns the page path and stats.",
	"Markdown source of the plan; the first level-one heading is its title",
)

// previewFileTool defines the preview_file MCP tool.
var previewFileTool = mcp.NewTool("preview_file",
	mcp.WithDescription("Render a local .csv, .json, .jsonl, .md or .diff file as a preview page, picking the viewer from its extension."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the file to preview"),
	),
	mcp.WithString("output",
		mcp.Description("Path of the HTML file to write (default: a new file in the output directory)"),
	),
)
