package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Documents    int    `json:"documents"`
	ActiveID     string `json:"active_id"`
	SaveState    string `json:"save_state"`
	PendingWrite bool   `json:"pending_write"`
	LoadError    string `json:"load_error,omitempty"`
	Subscribers  int    `json:"subscribers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.subsMu.Lock()
	subs := len(s.subs)
	s.subsMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	return StoreState{
		Documents:    len(s.docs),
		ActiveID:     s.activeID,
		SaveState:    string(s.status.State),
		PendingWrite: s.sched.Pending(),
		LoadError:    s.loadErr,
		Subscribers:  subs,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "document-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
