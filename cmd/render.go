package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/session"
)

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a file as a standalone HTML preview",
	Long: `Renders a CSV, JSON/JSONL, Markdown or diff file as a standalone HTML page
showing the preview's initial state. The viewer is chosen from the file
extension unless --kind is given. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("kind", "", "preview kind: csv, json, markdown, diff or plan")
	renderCmd.Flags().StringP("output", "o", "", "output HTML path, - for stdout (default: <file>.html)")
	renderCmd.Flags().String("title", "", "document title (default: file name)")
	renderCmd.Flags().Bool("base64", false, "input is a base64 encoded payload")
	renderCmd.Flags().Bool("copy", false, "copy the rendered HTML to the clipboard")
	renderCmd.Flags().Bool("open", false, "open the page in a browser")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

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
	if encoded, _ := cmd.Flags().GetBool("base64"); encoded {
		if text, err = payload.Decode(text); err != nil {
			return fmt.Errorf("decoding %s: %w", src, err)
		}
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" && src != "-" {
		title = filepath.Base(src)
	}

	x, err := session.Render(kind, text, title, string(cfg.Theme), engineOptions(cfg))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	switch {
	case output == "-":
		_, err = os.Stdout.Write(x.HTML)
		return err
	case output == "" && src == "-":
		output = "preview.html"
	case output == "":
		output = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".html"
	}
	if err := x.WriteFile(output); err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%s) -> %s\n", x.Title, x.Stats, output)

	if copyHTML, _ := cmd.Flags().GetBool("copy"); copyHTML {
		if err := clipboard.WriteAll(string(x.HTML)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
		} else {
			fmt.Println("HTML copied to clipboard")
		}
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		abs, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		openBrowser("file://" + filepath.ToSlash(abs))
	}
	return nil
}

// resolveKind picks the preview kind from an explicit name or the file extension.
func resolveKind(name, path string) (payload.Kind, error) {
	if name != "" {
		return payload.ParseKind(name)
	}
	if kind, ok := payload.KindForPath(path); ok {
		return kind, nil
	}
	return "", fmt.Errorf("cannot tell the preview kind of %s: pass --kind", path)
}
