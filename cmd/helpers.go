package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/ziadkadry99/previewkit/internal/config"
	"github.com/ziadkadry99/previewkit/internal/db"
	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `previewkit init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// engineOptions maps config onto the viewer options of rendered pages.
func engineOptions(cfg *config.Config) session.EngineOptions {
	return session.EngineOptions{
		DiffMode:    diff.Mode(cfg.Diff.ViewMode),
		ExpandFirst: expandFirst(cfg),
	}
}

// expandFirst converts diff.expand_first to the viewer option, where zero
// selects the default and a negative count collapses every file.
func expandFirst(cfg *config.Config) int {
	if cfg.Diff.ExpandFirst == 0 {
		return -1
	}
	return cfg.Diff.ExpandFirst
}

// openDatabase opens the preview database named by the config.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
	}
}
