package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/previewkit/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools that render CSV, JSON, Markdown and diff content as preview pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "previewkit MCP server started on stdio (output=%s)\n", cfg.OutputDir)

		opts := engineOptions(cfg)
		srv := mcpserver.NewServer(mcpserver.Options{
			OutputDir:   cfg.OutputDir,
			Theme:       string(cfg.Theme),
			DiffMode:    opts.DiffMode,
			ExpandFirst: opts.ExpandFirst,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
