package core

import "context"

// KV defines the contract for durable key-value storage.
// Adhering to this interface allows the store to be independent of the
// underlying backend (filesystem, SQLite, Postgres, in-memory fakes).
type KV interface {
	// Read returns the stored value for key, or found=false when absent.
	// Access failures wrap ErrStorageUnavailable; callers fall back to defaults.
	Read(ctx context.Context, key string) (value string, found bool, err error)

	// Write stores value under key, replacing any prior value.
	// Storage-full failures wrap ErrQuotaExceeded.
	Write(ctx context.Context, key, value string) error

	// Remove deletes key. Best-effort; a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Watchable is implemented by adapters that can observe external changes to
// their keys (e.g. another process replacing the snapshot).
type Watchable interface {
	// Watch emits an Event per externally changed key until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Closer is implemented by adapters holding resources (database handles).
type Closer interface {
	Close() error
}

// Well-known storage keys.
const (
	// DocumentsKey holds the serialized document snapshot (a JSON array).
	DocumentsKey = "notepad.documents"

	// ThemeKey holds the persisted theme preference ("light" or "dark").
	ThemeKey = "notepad.theme"
)
