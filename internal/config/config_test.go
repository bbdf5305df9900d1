package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != ThemeLight {
		t.Errorf("expected default theme %q, got %q", ThemeLight, cfg.Theme)
	}
	if cfg.OutputDir != "previews" {
		t.Errorf("expected default output_dir %q, got %q", "previews", cfg.OutputDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Diff.ViewMode != DiffLineByLine {
		t.Errorf("expected default view mode %q, got %q", DiffLineByLine, cfg.Diff.ViewMode)
	}
	if cfg.Diff.ExpandFirst != 1 {
		t.Errorf("expected default expand_first 1, got %d", cfg.Diff.ExpandFirst)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.previewkit.yml")

	original := DefaultConfig()
	original.Theme = ThemeDark
	original.Port = 9001
	original.OpenBrowser = false
	original.Include = []string{"**/*.csv", "**/*.json"}
	original.OutputDir = "output"
	original.Diff.ViewMode = DiffSideBySide
	original.Diff.ExpandFirst = 3
	original.Server.AllowAllOrigins = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Theme != original.Theme {
		t.Errorf("theme: got %q, want %q", loaded.Theme, original.Theme)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.OpenBrowser {
		t.Error("open_browser: got true, want false")
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if len(loaded.Include) != 2 || loaded.Include[0] != "**/*.csv" {
		t.Errorf("include: got %v", loaded.Include)
	}
	if loaded.Diff.ViewMode != DiffSideBySide || loaded.Diff.ExpandFirst != 3 {
		t.Errorf("diff: got %+v", loaded.Diff)
	}
	if !loaded.Server.AllowAllOrigins {
		t.Error("server.allow_all_origins: got false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load of missing file should succeed, got: %v", err)
	}
	if cfg.OutputDir != "previews" {
		t.Errorf("expected defaults, got output_dir %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PREVIEWKIT_THEME", "dark")
	t.Setenv("PREVIEWKIT_DIFF__VIEW_MODE", "side-by-side")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Theme != ThemeDark {
		t.Errorf("env override failed: got %q, want %q", loaded.Theme, ThemeDark)
	}
	if loaded.Diff.ViewMode != DiffSideBySide {
		t.Errorf("nested env override failed: got %q", loaded.Diff.ViewMode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"bad theme", func(c *Config) { c.Theme = "sepia" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"bad view mode", func(c *Config) { c.Diff.ViewMode = "stacked" }},
		{"negative expand first", func(c *Config) { c.Diff.ExpandFirst = -1 }},
		{"bad include glob", func(c *Config) { c.Include = []string{"data/[a-"} }},
		{"bad exclude glob", func(c *Config) { c.Exclude = []string{"{a,"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.csv", []string{"**/*.csv"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
