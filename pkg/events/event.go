package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CATALOG_MUTATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeCommandExecuted = "COMMAND_EXECUTED"
	TypeCatalogMutated  = "CATALOG_MUTATED"
)

// NewCommandExecuted records a command that completed the pipeline,
// whatever its outcome.
func NewCommandExecuted(command, tool string, cached bool) BaseEvent {
	return BaseEvent{
		Type: TypeCommandExecuted,
		Data: map[string]interface{}{
			"command": command,
			"tool":    tool,
			"cached":  cached,
		},
		OccurredAt: time.Now(),
	}
}

// NewCatalogMutated records a successful mutation of the product catalog.
func NewCatalogMutated(command, tool string, affected int) BaseEvent {
	return BaseEvent{
		Type: TypeCatalogMutated,
		Data: map[string]interface{}{
			"command":  command,
			"tool":     tool,
			"affected": affected,
		},
		OccurredAt: time.Now(),
	}
}
