package audit

import "context"

// DefaultCapacity bounds the trail: once full, each append evicts exactly one
// event, the oldest.
const DefaultCapacity = 500

type Repository interface {
	// Add appends to the tail, evicting the head first when at capacity.
	// Safe under concurrent callers; no event is lost or duplicated.
	Add(ctx context.Context, e Event) error

	// Latest returns up to limit events ordered by timestamp descending.
	// The trail does not clamp limit; that is the caller's job.
	Latest(ctx context.Context, limit int) ([]Event, error)
}
