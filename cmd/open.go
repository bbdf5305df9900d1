package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/store"
)

var openCmd = &cobra.Command{
	Use:   "open <file|->",
	Short: "Store a file as a preview, serve it and open it in a browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().String("kind", "", "preview kind: csv, json, markdown or diff")
	openCmd.Flags().String("title", "", "preview title (default: file name)")
	openCmd.Flags().Bool("no-browser", false, "print the URL without opening a browser")
	addServeFlags(openCmd)
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyServeFlags(cmd, cfg)

	src := args[0]
	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := resolveKind(kindFlag, src)
	if err != nil {
		return err
	}
	text, err := payload.Load(src)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	source := ""
	if src != "-" {
		source = src
		if title == "" {
			title = filepath.Base(src)
		}
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	p, err := store.NewStore(database).Create(context.Background(), store.Preview{
		Kind:    kind,
		Title:   title,
		Source:  source,
		Content: text,
	})
	if err != nil {
		return fmt.Errorf("storing preview: %w", err)
	}

	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	return runServer(cfg, database, func(baseURL string) {
		url := baseURL + "/p/" + p.ID
		fmt.Printf("Preview %s at %s\n", p.ID, url)
		if cfg.OpenBrowser && !noBrowser {
			openBrowser(url)
		}
	})
}
