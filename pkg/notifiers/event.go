package notifiers

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted after a successful launch call.
const (
	EventExecutionCreated   = "execution.created"
	EventExecutionStarted   = "execution.started"
	EventExperimentsCreated = "experiments.created"
)

// Event represents the payload delivered to notifiers.
type Event struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ExecutionID string `json:"execution_id"`
	Source      string `json:"source"`
	// Experiments is the number of experiments submitted; only set for experiments.created.
	Experiments int       `json:"experiments,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewEvent constructs an Event with a fresh id.
func NewEvent(typ, executionID, source string) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        typ,
		ExecutionID: executionID,
		Source:      source,
		OccurredAt:  time.Now().UTC(),
	}
}
