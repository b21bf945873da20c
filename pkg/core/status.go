package core

import "errors"

// SaveState is the tri-state persistence indicator surfaced to the UI.
type SaveState string

const (
	StateSaved  SaveState = "saved"
	StateSaving SaveState = "saving"
	StateError  SaveState = "error"
)

// Status pairs the save state with the latest classified failure message.
// The message is empty unless State is StateError.
type Status struct {
	State   SaveState `json:"state"`
	Message string    `json:"message,omitempty"`
}

// statusAfterWrite derives the status that follows a flush attempt.
// Success clears any prior error.
func statusAfterWrite(err error) Status {
	if err == nil {
		return Status{State: StateSaved}
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return Status{State: StateError, Message: MsgQuotaExceeded}
	}
	return Status{State: StateError, Message: MsgWriteFailed}
}
