package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// FileSource reads the environment color scheme from a file containing the
// literal "light" or "dark", typically a preference exported by the desktop
// session or a container orchestrator.
type FileSource struct {
	Path   string
	Logger *slog.Logger
}

// ColorScheme reads the file. ok=false when the file is missing or holds an
// unknown literal.
func (f *FileSource) ColorScheme(ctx context.Context) (Theme, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", false
	}
	t := Theme(strings.TrimSpace(string(data)))
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Changes watches the file and emits its value after every write.
func (f *FileSource) Changes(ctx context.Context) (<-chan Theme, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: editors replace files by rename, which drops a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(f.Path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", f.Path, err)
	}

	out := make(chan Theme, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(f.Path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if t, ok := f.ColorScheme(ctx); ok {
					select {
					case out <- t:
					default:
					}
				}
			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if f.Logger != nil {
					f.Logger.Error("fsnotify error", "error", wErr)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if f.Logger != nil {
			f.Logger.Error("color-scheme watch stopped", "error", err)
		}
	}))

	return out, nil
}

var _ EnvironmentSource = (*FileSource)(nil)
