package config

// Theme is the initial page theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DiffViewMode is the initial diff layout.
type DiffViewMode string

const (
	DiffLineByLine DiffViewMode = "line-by-line"
	DiffSideBySide DiffViewMode = "side-by-side"
)

// Config is the top-level previewkit configuration, corresponding to .previewkit.yml.
type Config struct {
	OutputDir   string       `yaml:"output_dir" koanf:"output_dir"`
	Port        int          `yaml:"port" koanf:"port"`
	OpenBrowser bool         `yaml:"open_browser" koanf:"open_browser"`
	Theme       Theme        `yaml:"theme" koanf:"theme"`
	DBPath      string       `yaml:"db_path" koanf:"db_path"`
	Include     []string     `yaml:"include" koanf:"include"`
	Exclude     []string     `yaml:"exclude" koanf:"exclude"`
	Diff        DiffConfig   `yaml:"diff" koanf:"diff"`
	Server      ServerConfig `yaml:"server" koanf:"server"`
}

// DiffConfig holds diff preview settings.
type DiffConfig struct {
	ViewMode    DiffViewMode `yaml:"view_mode" koanf:"view_mode"`
	ExpandFirst int          `yaml:"expand_first" koanf:"expand_first"`
}

// ServerConfig holds settings for previewkit serve.
type ServerConfig struct {
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
