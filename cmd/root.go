package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "previewkit",
	Short: "Interactive browser previews for CSV, JSON, Markdown and diffs",
	Long: `previewkit turns CSV, JSON/JSONL, Markdown and git diff text into
interactive HTML previews: searchable and sortable tables, collapsible
JSON trees, rendered Markdown with diagrams and collapsible diffs. Pages
can be written as standalone snapshots or served live, where every
interaction is handled by a server-side session.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".previewkit.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
