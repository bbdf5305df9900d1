package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/session"
)

var diffCmd = &cobra.Command{
	Use:   "diff [-- git diff args...]",
	Short: "Preview the working tree changes of the current git repository",
	Long: `Runs git diff (with any extra arguments, e.g. --staged or main..HEAD)
and renders the result as a diff preview page.`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringP("output", "o", "changes.html", "output HTML path")
	diffCmd.Flags().String("mode", "", "view mode: line-by-line or side-by-side (overrides config)")
	diffCmd.Flags().Bool("open", false, "open the page in a browser")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := gitDiff(".", args)
	if err != nil {
		return err
	}

	opts := engineOptions(cfg)
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		m, ok := diff.ParseMode(mode)
		if !ok {
			return fmt.Errorf("invalid --mode %q: must be line-by-line or side-by-side", mode)
		}
		opts.DiffMode = m
	}

	x, err := session.Render(payload.KindDiff, text, "", string(cfg.Theme), opts)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if err := x.WriteFile(output); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", x.Stats, output)

	if open, _ := cmd.Flags().GetBool("open"); open {
		abs, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		openBrowser("file://" + filepath.ToSlash(abs))
	}
	return nil
}

// gitDiff returns the output of git diff run in dir with extra arguments.
func gitDiff(dir string, args []string) (string, error) {
	c := exec.Command("git", append([]string{"diff", "--no-color", "--no-ext-diff"}, args...)...)
	c.Dir = dir
	c.Stderr = os.Stderr
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(out), nil
}
