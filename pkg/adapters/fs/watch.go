package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// watchDebounce coalesces the create+write+rename bursts editors and the
// atomic writer itself produce for a single logical change.
const watchDebounce = 50 * time.Millisecond

// Watch emits a core.Event for every key changed by another process, until
// ctx is done. Events for this adapter's own temp files are filtered out.
func (k *KV) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(k.path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", k.path, err)
	}

	events := make(chan core.Event, 16)
	deb := newDebouncer(watchDebounce)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		defer deb.stop()
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				k.processEvent(ctx, event, deb, events)

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				k.logger.Error("fsnotify error", "error", wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		k.logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

func (k *KV) processEvent(ctx context.Context, event fsnotify.Event, deb *debouncer, out chan<- core.Event) {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) {
		return
	}
	key, ok := keyFromFilename(event.Name)
	if !ok {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	k.logger.Debug("storage event", "key", key, "type", eType)
	deb.add(key, func() {
		e := core.Event{
			Type:      eType,
			ID:        key,
			Timestamp: time.Now().UnixMilli(),
		}
		select {
		case out <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

// debouncer holds one pending timer per key. Re-adding a key resets its
// timer, so a burst of events for the same key fires once.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

func (d *debouncer) add(key string, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fire()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
