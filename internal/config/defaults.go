package config

import "path/filepath"

// FileName is the configuration file looked up in the working directory.
const FileName = ".previewkit.yml"

// DefaultExcludes are glob patterns skipped by build by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"package-lock.json",
	"**/*.min.json",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   "previews",
		Port:        8080,
		OpenBrowser: true,
		Theme:       ThemeLight,
		DBPath:      filepath.Join(".previewkit", "previewkit.db"),
		Include:     []string{"**"},
		Exclude:     DefaultExcludes,
		Diff: DiffConfig{
			ViewMode:    DiffLineByLine,
			ExpandFirst: 1,
		},
	}
}
