package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// projectMarkers maps marker files to a recommended include glob for
// the data files a project of that shape tends to carry.
var projectMarkers = map[string]struct {
	Name    string
	Include string
}{
	"package.json":     {Name: "Node.js", Include: "**/*.{csv,json,md}"},
	"go.mod":           {Name: "Go", Include: "**/*.{csv,json,jsonl,md}"},
	"requirements.txt": {Name: "Python", Include: "**/*.{csv,json,jsonl,md}"},
	"pyproject.toml":   {Name: "Python", Include: "**/*.{csv,json,jsonl,md}"},
	"dbt_project.yml":  {Name: "dbt", Include: "**/*.csv"},
}

// detectProjectType checks the current directory for well-known project markers.
func detectProjectType() (name string, include string) {
	for marker, info := range projectMarkers {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			return info.Name, info.Include
		}
	}
	return "", "**"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .previewkit.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to previewkit! Let's configure your project.")
	fmt.Println()

	projType, defaultInclude := detectProjectType()
	if projType != "" {
		fmt.Printf("Detected project type: %s\n\n", projType)
	}

	// 1. Theme.
	themePrompt := promptui.Select{
		Label: "Select page theme",
		Items: []string{string(ThemeLight), string(ThemeDark)},
	}
	_, themeStr, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 2. Diff layout.
	modePrompt := promptui.Select{
		Label: "Default diff layout",
		Items: []string{string(DiffLineByLine), string(DiffSideBySide)},
	}
	_, modeStr, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("diff layout selection: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered previews",
		Default: "previews",
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port for previewkit serve",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("invalid port %q", s)
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 5. Include patterns.
	includePrompt := promptui.Prompt{
		Label:   "Include patterns (comma-separated globs)",
		Default: defaultInclude,
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	include := splitAndTrim(includeStr)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := append([]string(nil), DefaultExcludes...)
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := DefaultConfig()
	cfg.Theme = Theme(themeStr)
	cfg.Diff.ViewMode = DiffViewMode(modeStr)
	cfg.OutputDir = outputDir
	cfg.Port = port
	cfg.Include = include
	cfg.Exclude = exclude

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
