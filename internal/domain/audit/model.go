package audit

import "time"

// ActorSystem is the actor recorded when a mutation carries no identity.
const ActorSystem = "system"

// Well-known action values. Action is free-form; these are the ones the
// handlers emit.
const (
	ActionCreate       = "CREATE"
	ActionUpdateStatus = "UPDATE_STATUS"
	ActionDelete       = "DELETE"
)

const (
	EntityPatient     = "patient"
	EntityAppointment = "appointment"
)

// Event is one domain mutation. Immutable once recorded: the trail copies the
// metadata map on write and on read so no caller can alter a stored event.
type Event struct {
	ID        string
	Timestamp time.Time

	Actor  string
	Action string

	EntityType string
	EntityID   string

	// Metadata holds loosely-typed key/value context. Key order is irrelevant.
	Metadata map[string]any
}
