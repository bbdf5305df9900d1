package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/build"
	"github.com/ziadkadry99/previewkit/internal/progress"
	"github.com/ziadkadry99/previewkit/internal/walker"
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Render every previewable file under a directory",
	Long: `Walks dir (default: the working directory), renders every .csv, .json,
.jsonl, .md and .diff file matching the include/exclude globs into the
output directory and writes an index page. Files whose content is
unchanged since the last build are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	buildCmd.Flags().Int("concurrency", 0, "max parallel renders")
	buildCmd.Flags().Bool("force", false, "re-render unchanged files")
	buildCmd.Flags().Bool("open", false, "open the index page when done")
	buildCmd.Flags().Bool("no-progress", false, "do not report progress")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning files in %s...\n", rootDir)
	}

	walkCfg := walker.WalkerConfig{
		RootDir: rootDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}
	if verbose {
		walkCfg.OnSkip = func(relPath, reason string) {
			fmt.Fprintf(os.Stderr, "Skipping %s (%s)\n", relPath, reason)
		}
	}
	files, err := walker.Walk(walkCfg)
	if err != nil {
		return fmt.Errorf("walking %s: %w", rootDir, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d previewable files\n", len(files))
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	force, _ := cmd.Flags().GetBool("force")
	opts := engineOptions(cfg)
	builder := build.New(build.Options{
		OutputDir:   absOut,
		Theme:       string(cfg.Theme),
		DiffMode:    opts.DiffMode,
		ExpandFirst: opts.ExpandFirst,
		Concurrency: concurrency,
		Force:       force,
	})

	reporter := progress.NewReporter()
	if quiet, _ := cmd.Flags().GetBool("no-progress"); quiet {
		reporter = progress.Quiet{}
	}
	// Only changed files are reported, so the bar starts at the first one.
	var started sync.Once
	builder.SetProgressFunc(func(processed, total int, currentFile string) {
		started.Do(func() { reporter.Start(total) })
		reporter.Update(processed, currentFile)
	})

	result, err := builder.Run(ctx, files)
	reporter.Finish()
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}

	fmt.Println()
	fmt.Println("Build complete!")
	fmt.Printf("  Pages rendered: %d\n", len(result.Rendered))
	fmt.Printf("  Pages skipped:  %d (unchanged)\n", result.Skipped)
	fmt.Printf("  Pages removed:  %d\n", result.Removed)
	fmt.Printf("  Failures:       %d\n", len(result.Errors))
	fmt.Printf("  Duration:       %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Output:         %s\n", absOut)

	if open, _ := cmd.Flags().GetBool("open"); open {
		openBrowser("file://" + filepath.ToSlash(filepath.Join(absOut, "index.html")))
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d files failed to render", len(result.Errors))
	}
	return nil
}
