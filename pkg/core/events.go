package core

import "fmt"

// EventType represents the type of change in the document set.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"

	// EventStatus signals a save-status transition rather than a document change.
	EventStatus EventType = "STATUS"
)

// Event represents a change observed on the store or its backing storage.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp in milliseconds
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
