// Package sqlite implements core.KV on a SQLite database using the pure-Go
// driver (modernc.org/sqlite). Use ":memory:" for an ephemeral store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// KV implements core.KV backed by a single `kv` table.
type KV struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewKV opens (or creates) a SQLite-backed store at path.
func NewKV(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// WAL keeps concurrent readers from blocking the debounced writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &KV{db: db}, nil
}

// Read returns the stored value for key, or found=false when absent.
func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var value string
	err := k.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read %q: %w", core.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// Write upserts value under key. A full database/disk is classified as a
// quota failure.
func (k *KV) Write(ctx context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		if isFull(err) {
			return fmt.Errorf("write %q: %w: %w", key, core.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. A missing key is not an error.
func (k *KV) Remove(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, err := k.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Close shuts down the database handle.
func (k *KV) Close() error {
	return k.db.Close()
}

// isFull matches SQLITE_FULL ("database or disk is full"), which the driver
// only exposes through the error text.
func isFull(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database or disk is full")
}

var _ core.KV = (*KV)(nil)
var _ core.Closer = (*KV)(nil)
