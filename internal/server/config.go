package server

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	notepad "github.com/hikmetgulsesli/markdown-notepad"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

// DefaultAddr is the listen address used when NOTEPAD_ADDR is unset.
const DefaultAddr = ":8787"

// Config holds the server environment. Values come from the process
// environment, optionally seeded from a .env file.
type Config struct {
	Addr        string
	DataDir     string
	Adapter     string
	SQLitePath  string
	PostgresDSN string
	Debounce    time.Duration
	ThemeFile   string
}

// LoadConfig reads the environment, loading a .env file first if present.
func LoadConfig(logger *slog.Logger) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg := Config{
		Addr:        getEnv("NOTEPAD_ADDR", DefaultAddr),
		DataDir:     os.Getenv("NOTEPAD_DATA_DIR"),
		Adapter:     os.Getenv("NOTEPAD_ADAPTER"),
		SQLitePath:  os.Getenv("NOTEPAD_SQLITE_PATH"),
		PostgresDSN: os.Getenv("NOTEPAD_POSTGRES_DSN"),
		ThemeFile:   os.Getenv("NOTEPAD_THEME_FILE"),
	}

	if raw := os.Getenv("NOTEPAD_DEBOUNCE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			logger.Warn("ignoring invalid NOTEPAD_DEBOUNCE_MS", "value", raw)
		} else {
			cfg.Debounce = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// Options translates the environment into notepad options.
func (c Config) Options() []notepad.Option {
	var opts []notepad.Option
	if c.DataDir != "" {
		opts = append(opts, notepad.WithDataDir(c.DataDir))
	}
	if c.Adapter != "" {
		opts = append(opts, notepad.WithAdapter(c.Adapter))
	}
	if c.SQLitePath != "" {
		opts = append(opts, notepad.WithSQLitePath(c.SQLitePath))
	}
	if c.PostgresDSN != "" {
		opts = append(opts, notepad.WithPostgresDSN(c.PostgresDSN))
	}
	if c.Debounce > 0 {
		opts = append(opts, notepad.WithDebounce(c.Debounce))
	}
	if c.ThemeFile != "" {
		opts = append(opts, notepad.WithThemeSource(&theme.FileSource{Path: c.ThemeFile}))
	}
	return opts
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
