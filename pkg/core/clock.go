package core

import "time"

// Clock supplies timestamps for document mutations.
// Injected so tests can drive deterministic time.
type Clock interface {
	// NowMillis returns the current time in milliseconds since epoch.
	NowMillis() int64
}

type systemClock struct{}

func (systemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
