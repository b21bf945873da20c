// Package memory provides an in-memory core.KV.
//
// It doubles as the test fake for every component that takes a KV, with
// injectable failures to simulate quota exhaustion and unavailable storage,
// and as a last-resort backend when no durable storage is configured.
package memory

import (
	"context"
	"sync"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/core"
)

// KV implements core.KV backed by a map. Safe for concurrent use.
type KV struct {
	mu     sync.RWMutex
	data   map[string]string
	writes int

	readErr   error
	writeErr  error
	removeErr error
}

// NewKV creates an empty in-memory store.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// Read returns the stored value, or found=false when absent.
func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.readErr != nil {
		return "", false, k.readErr
	}
	v, ok := k.data[key]
	return v, ok, nil
}

// Write stores value under key.
func (k *KV) Write(ctx context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.writeErr != nil {
		return k.writeErr
	}
	k.data[key] = value
	k.writes++
	return nil
}

// Remove deletes key. A missing key is not an error.
func (k *KV) Remove(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.removeErr != nil {
		return k.removeErr
	}
	delete(k.data, key)
	return nil
}

// Seed stores value under key without counting as a write.
func (k *KV) Seed(key, value string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
}

// Value returns the raw stored value for assertions.
func (k *KV) Value(key string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	return v, ok
}

// Writes returns the number of successful Write calls.
func (k *KV) Writes() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.writes
}

// FailReads makes subsequent reads return err. Pass nil to heal.
func (k *KV) FailReads(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.readErr = err
}

// FailWrites makes subsequent writes return err. Pass nil to heal.
func (k *KV) FailWrites(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writeErr = err
}

// FailRemoves makes subsequent removes return err. Pass nil to heal.
func (k *KV) FailRemoves(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.removeErr = err
}

var _ core.KV = (*KV)(nil)
