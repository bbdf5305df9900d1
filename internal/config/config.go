// Package config loads previewkit settings from .previewkit.yml and
// PREVIEWKIT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nested keys: PREVIEWKIT_DIFF__VIEW_MODE sets diff.view_mode.
const EnvPrefix = "PREVIEWKIT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PREVIEWKIT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: PREVIEWKIT_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validThemes = map[Theme]bool{
	ThemeLight: true,
	ThemeDark:  true,
}

var validViewModes = map[DiffViewMode]bool{
	DiffLineByLine: true,
	DiffSideBySide: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Theme != "" && !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme %q: must be one of light, dark", c.Theme)
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.Diff.ViewMode != "" && !validViewModes[c.Diff.ViewMode] {
		return fmt.Errorf("invalid diff.view_mode %q: must be one of line-by-line, side-by-side", c.Diff.ViewMode)
	}

	if c.Diff.ExpandFirst < 0 {
		return fmt.Errorf("diff.expand_first must be non-negative")
	}

	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	return nil
}
