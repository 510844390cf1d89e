package objects

import "github.com/google/uuid"

// Realtime event names emitted after successful mutations.
const (
	EventObjectCreated = "object:created"
	EventObjectDeleted = "object:deleted"
)

// Notifier receives object lifecycle events after they are committed.
// Notification is fire-and-forget: a failed or absent subscriber never
// affects the mutation outcome.
type Notifier interface {
	ObjectCreated(object Object)
	ObjectDeleted(id uuid.UUID)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) ObjectCreated(Object)    {}
func (NopNotifier) ObjectDeleted(uuid.UUID) {}
