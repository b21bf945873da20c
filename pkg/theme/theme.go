// Package theme resolves and persists the light/dark preference.
//
// Resolution order at load: explicit stored preference, else the operating
// environment's color-scheme signal, else a configured default. Environment
// changes only apply while no explicit preference exists; once the user sets
// a theme, the choice is stored and environment changes are ignored for good.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// Theme is a UI color scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Valid reports whether t is a known theme literal.
func (t Theme) Valid() bool { return t == Light || t == Dark }

// EnvironmentSource reports the operating environment's color scheme.
type EnvironmentSource interface {
	// ColorScheme returns the current environment preference, if any.
	ColorScheme(ctx context.Context) (Theme, bool)

	// Changes emits subsequent environment preference changes until ctx is done.
	Changes(ctx context.Context) (<-chan Theme, error)
}

// Config holds the wiring for a theme store.
type Config struct {
	KV      core.KV
	Key     string            // core.ThemeKey when empty
	Source  EnvironmentSource // optional
	Default Theme             // Light when empty
	Logger  *slog.Logger
}

// Store holds the resolved theme.
type Store struct {
	mu       sync.Mutex
	kv       core.KV
	key      string
	source   EnvironmentSource
	def      Theme
	logger   *slog.Logger
	current  Theme
	explicit bool
}

// NewStore creates a theme store. Call Load to resolve the initial value.
func NewStore(cfg Config) *Store {
	if cfg.Key == "" {
		cfg.Key = core.ThemeKey
	}
	if !cfg.Default.Valid() {
		cfg.Default = Light
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		kv:      cfg.KV,
		key:     cfg.Key,
		source:  cfg.Source,
		def:     cfg.Default,
		logger:  cfg.Logger,
		current: cfg.Default,
	}
}

// Load resolves the initial theme. Storage read failures and unknown stored
// literals fall through to the environment signal or the default; nothing
// propagates to the caller.
func (s *Store) Load(ctx context.Context) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.kv.Read(ctx, s.key)
	if err != nil {
		s.logger.Warn("theme preference read failed", "error", err)
	} else if found {
		if t := Theme(raw); t.Valid() {
			s.current = t
			s.explicit = true
			return t
		}
		s.logger.Warn("ignoring unknown stored theme", "value", raw)
	}

	if s.source != nil {
		if t, ok := s.source.ColorScheme(ctx); ok && t.Valid() {
			s.current = t
			return t
		}
	}
	s.current = s.def
	return s.def
}

// Current returns the resolved theme.
func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set records an explicit preference and persists it. The in-memory value
// changes even when the write fails, so the UI always reflects the choice.
func (s *Store) Set(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}

	s.mu.Lock()
	s.current = t
	s.explicit = true
	s.mu.Unlock()

	if err := s.kv.Write(ctx, s.key, string(t)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark as an explicit preference.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	next := Light
	if s.Current() == Light {
		next = Dark
	}
	return next, s.Set(ctx, next)
}

// Run applies environment color-scheme changes until ctx is done. Changes
// arriving after an explicit preference exists are dropped.
func (s *Store) Run(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	changes, err := s.source.Changes(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to environment changes: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case t, ok := <-changes:
				if !ok {
					return nil
				}
				s.applyEnvironment(t)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("environment subscription stopped", "error", err)
	}))
	return nil
}

func (s *Store) applyEnvironment(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.explicit || !t.Valid() {
		return
	}
	s.current = t
	s.logger.Debug("theme follows environment", "theme", t)
}
