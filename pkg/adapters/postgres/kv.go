// Package postgres implements core.KV on PostgreSQL, for deployments where
// the notepad server runs against a shared database instead of local files.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// pq error code for an exhausted disk (class 53, insufficient resources).
const codeDiskFull = "53100"

// KV implements core.KV backed by a single `kv` table.
type KV struct {
	db *sql.DB
}

// NewKV connects to PostgreSQL and ensures the kv table exists.
func NewKV(connStr string) (*KV, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &KV{db: db}, nil
}

// Read returns the stored value for key, or found=false when absent.
func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = $1", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read %q: %w", core.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// Write upserts value under key. A full disk on the server is classified as
// a quota failure.
func (k *KV) Write(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`,
		key, value,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == codeDiskFull {
			return fmt.Errorf("write %q: %w: %w", key, core.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. A missing key is not an error.
func (k *KV) Remove(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, "DELETE FROM kv WHERE key = $1", key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (k *KV) Close() error {
	return k.db.Close()
}

var _ core.KV = (*KV)(nil)
var _ core.Closer = (*KV)(nil)
