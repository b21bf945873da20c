package fs

import (
	"os"

	"github.com/aretw0/introspection"
)

// AdapterState exposes internal state for observability.
type AdapterState struct {
	Path  string   `json:"path"`
	Keys  []string `json:"keys,omitempty"`
	Error string   `json:"error,omitempty"`
}

// State implements introspection.Introspectable.
func (k *KV) State() any {
	state := AdapterState{Path: k.path}

	entries, err := os.ReadDir(k.path)
	if err != nil {
		state.Error = err.Error()
		return state
	}
	for _, entry := range entries {
		if key, ok := keyFromFilename(entry.Name()); ok {
			state.Keys = append(state.Keys, key)
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (k *KV) ComponentType() string {
	return "fs-adapter"
}

var _ introspection.Introspectable = (*KV)(nil)
var _ introspection.Component = (*KV)(nil)
