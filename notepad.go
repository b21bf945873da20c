package notepad

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/adapters/fs"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/adapters/memory"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/adapters/postgres"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/adapters/sqlite"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

// App wires a storage adapter to the document and theme stores. It is the
// unit a host (CLI, HTTP server, embedder) holds on to.
type App struct {
	Store  *core.Store
	Themes *theme.Store
	KV     core.KV

	logger *slog.Logger
}

// New builds the notepad from functional options, opens the selected storage
// adapter and loads initial state. The returned App is ready for use.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = openAdapter(ctx, o, logger)
		if err != nil {
			return nil, err
		}
	}

	sched := o.scheduler
	if sched == nil {
		sched = core.NewTimerScheduler(o.debounce)
	}

	store := core.NewStore(core.StoreConfig{
		KV:              kv,
		Key:             core.DocumentsKey,
		Scheduler:       sched,
		Clock:           o.clock,
		Logger:          logger,
		EventBufferSize: o.eventBuffer,
	})
	if err := store.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	themes := theme.NewStore(theme.Config{
		KV:      kv,
		Key:     core.ThemeKey,
		Source:  o.themeSource,
		Default: o.themeDefault,
		Logger:  logger,
	})
	themes.Load(ctx)

	return &App{
		Store:  store,
		Themes: themes,
		KV:     kv,
		logger: logger,
	}, nil
}

// openAdapter constructs the storage backend named by the options.
func openAdapter(ctx context.Context, o *options, logger *slog.Logger) (core.KV, error) {
	switch o.adapter {
	case AdapterFS, "":
		dir := ResolveDataDir(o.dataDir, o.forceTemp || IsDevRun())
		kv := fs.NewKV(fs.Config{Path: dir, Logger: logger})
		if err := kv.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize storage at %q: %w", dir, err)
		}
		return kv, nil
	case AdapterSQLite:
		path := o.sqlitePath
		if path == "" {
			dir := ResolveDataDir(o.dataDir, o.forceTemp || IsDevRun())
			path = filepath.Join(dir, "mdnote.db")
		}
		return sqlite.NewKV(path)
	case AdapterPostgres:
		if o.postgresDSN == "" {
			return nil, fmt.Errorf("postgres adapter requires a DSN")
		}
		return postgres.NewKV(o.postgresDSN)
	case AdapterMemory:
		return memory.NewKV(), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", o.adapter)
	}
}

// Shutdown flushes any pending snapshot and releases the adapter. Hosts that
// want teardown without durability (browser-tab semantics) call Close instead.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Store.FlushNow(ctx)
	a.close()
	return err
}

// Close tears the app down without flushing pending writes.
func (a *App) Close() {
	a.close()
}

func (a *App) close() {
	a.Store.Close()
	if c, ok := a.KV.(core.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close storage adapter", "error", err)
		}
	}
}
