package notepad

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

// ConfigFileName is the well-known configuration file looked up by LoadConfig.
const ConfigFileName = "mdnote.yaml"

// Config mirrors the mdnote.yaml file. Zero values mean "use the default".
type Config struct {
	DataDir     string `yaml:"data_dir"`
	Adapter     string `yaml:"adapter"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
	DebounceMs  int    `yaml:"debounce_ms"`
	Theme       string `yaml:"theme"`
	ThemeFile   string `yaml:"theme_file"`
}

// LoadConfig reads a yaml configuration file. A missing file is not an
// error; it returns an empty Config so defaults apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Options translates a Config into functional options for New.
func (c Config) Options() []Option {
	var opts []Option
	if c.DataDir != "" {
		opts = append(opts, WithDataDir(c.DataDir))
	}
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.SQLitePath != "" {
		opts = append(opts, WithSQLitePath(c.SQLitePath))
	}
	if c.PostgresDSN != "" {
		opts = append(opts, WithPostgresDSN(c.PostgresDSN))
	}
	if c.DebounceMs > 0 {
		opts = append(opts, WithDebounce(time.Duration(c.DebounceMs)*time.Millisecond))
	}
	if c.Theme != "" {
		opts = append(opts, WithThemeDefault(theme.Theme(c.Theme)))
	}
	if c.ThemeFile != "" {
		opts = append(opts, WithThemeSource(&theme.FileSource{Path: c.ThemeFile}))
	}
	return opts
}
