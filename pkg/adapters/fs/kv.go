// Package fs implements core.KV on the local filesystem: one file per key,
// written atomically via temp-file-and-rename. It is the default durable
// backend and the only one that supports watching for external changes.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

const keyFileExt = ".json"

// Config holds the configuration for the filesystem adapter.
type Config struct {
	Path   string // directory holding one file per key
	Logger *slog.Logger
}

// KV implements core.KV with one file per key under Config.Path.
type KV struct {
	path   string
	logger *slog.Logger
}

// NewKV creates a filesystem-backed adapter rooted at cfg.Path.
func NewKV(cfg Config) *KV {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &KV{path: cfg.Path, logger: logger}
}

// Initialize ensures the storage directory exists.
func (k *KV) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(k.path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Path returns the storage directory.
func (k *KV) Path() string { return k.path }

// Read returns the stored value for key, or found=false when absent.
func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(k.filename(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, wrapAccess(err))
	}
	return string(data), true, nil
}

// Write stores value under key atomically. A full disk is classified as a
// quota failure so callers can show the specific message.
func (k *KV) Write(ctx context.Context, key, value string) error {
	if err := writeFileAtomic(k.filename(key), []byte(value), 0644); err != nil {
		if isDiskFull(err) {
			return fmt.Errorf("failed to write %q: %w: %w", key, core.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key file. A missing file is not an error.
func (k *KV) Remove(ctx context.Context, key string) error {
	if err := os.Remove(k.filename(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", key, wrapAccess(err))
	}
	return nil
}

// filename maps a key to a file path. Keys are escaped so arbitrary key
// strings cannot traverse out of the storage directory.
func (k *KV) filename(key string) string {
	return filepath.Join(k.path, url.PathEscape(key)+keyFileExt)
}

// keyFromFilename is the inverse of filename. ok=false for foreign files.
func keyFromFilename(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, keyFileExt) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(base, keyFileExt))
	if err != nil {
		return "", false
	}
	return key, true
}

func isDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT)
}

func wrapAccess(err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	return err
}

var _ core.KV = (*KV)(nil)
var _ core.Watchable = (*KV)(nil)
