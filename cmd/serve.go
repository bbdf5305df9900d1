package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/config"
	"github.com/ziadkadry99/previewkit/internal/db"
	"github.com/ziadkadry99/previewkit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Starts the previewkit HTTP server. Previews are stored with
POST /api/previews and viewed at /p/{id}, where each open page is driven
by a live session over a websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		return runServer(cfg, database, nil)
	},
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	cmd.Flags().Bool("allow-all-origins", false, "allow cross-origin API requests from any origin")
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if allow, _ := cmd.Flags().GetBool("allow-all-origins"); allow {
		cfg.Server.AllowAllOrigins = true
	}
}

// runServer serves until interrupted. ready, when set, runs once the
// server has been started with the base URL it listens on.
func runServer(cfg *config.Config, database *db.DB, ready func(baseURL string)) error {
	srv := server.New(server.Config{
		Port:        cfg.Port,
		AllowAll:    cfg.Server.AllowAllOrigins,
		Theme:       string(cfg.Theme),
		DiffMode:    string(cfg.Diff.ViewMode),
		ExpandFirst: expandFirst(cfg),
		Verbose:     verbose,
	}, database)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	baseURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Fprintf(os.Stderr, "previewkit server %s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
	fmt.Fprintf(os.Stderr, "  Previews: %s/\n", baseURL)

	if ready != nil {
		go ready(baseURL)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
