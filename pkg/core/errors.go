package core

import "errors"

// Classified storage failures. Adapters wrap these sentinels so the store can
// surface a specific user-facing message without knowing the backend.
var (
	// ErrQuotaExceeded indicates the backing storage is full.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageUnavailable indicates the backing storage cannot be accessed at all.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// User-facing messages surfaced through the save status.
const (
	MsgQuotaExceeded = "Storage is full. Please delete some documents."
	MsgWriteFailed   = "Failed to save documents"
	MsgLoadFailed    = "Failed to load saved documents"
)
