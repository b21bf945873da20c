package notepad

import (
	"log/slog"
	"time"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

// Supported storage adapters.
const (
	AdapterFS       = "fs"
	AdapterSQLite   = "sqlite"
	AdapterPostgres = "postgres"
	AdapterMemory   = "memory"
)

// options holds the internal configuration for the notepad app.
type options struct {
	dataDir      string
	adapter      string
	sqlitePath   string
	postgresDSN  string
	debounce     time.Duration
	forceTemp    bool
	eventBuffer  int
	kv           core.KV
	scheduler    core.Scheduler
	clock        core.Clock
	themeSource  theme.EnvironmentSource
	themeDefault theme.Theme
	logger       *slog.Logger
}

// Option defines a functional option for configuring the notepad.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:  AdapterFS,
		debounce: core.DefaultDebounce,
	}
}

// WithDataDir sets the directory for file-based storage.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithAdapter selects the storage backend: fs, sqlite, postgres or memory.
func WithAdapter(adapter string) Option {
	return func(o *options) {
		o.adapter = adapter
	}
}

// WithSQLitePath overrides the SQLite database location.
func WithSQLitePath(path string) Option {
	return func(o *options) {
		o.sqlitePath = path
	}
}

// WithPostgresDSN sets the connection string for the postgres adapter.
func WithPostgresDSN(dsn string) Option {
	return func(o *options) {
		o.postgresDSN = dsn
	}
}

// WithDebounce sets the quiet period before a snapshot write.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithForceTemp forces storage into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithEventBuffer sets the per-subscriber event channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		o.eventBuffer = n
	}
}

// WithKV injects a custom storage adapter (e.g. mock, remote KV).
// If provided, the adapter selection is skipped.
func WithKV(kv core.KV) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithScheduler injects a custom debounce scheduler (deterministic test clocks).
func WithScheduler(s core.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithClock injects a custom timestamp source.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithThemeSource sets the environment color-scheme source.
func WithThemeSource(src theme.EnvironmentSource) Option {
	return func(o *options) {
		o.themeSource = src
	}
}

// WithThemeDefault sets the theme used when nothing is stored and the
// environment reports no preference.
func WithThemeDefault(t theme.Theme) Option {
	return func(o *options) {
		o.themeDefault = t
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
