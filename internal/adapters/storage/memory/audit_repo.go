package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Rambabu64681/Health-API/internal/domain/audit"
)

// auditRepo is a bounded, insertion-ordered event log. Append and eviction
// jointly mutate the slice, so one mutex guards both: the size invariant holds
// under any interleaving and eviction never removes more than one event per
// insertion.
type auditRepo struct {
	mu       sync.Mutex
	capacity int
	events   []audit.Event // oldest first
}

func NewAuditRepo(capacity int) audit.Repository {
	if capacity <= 0 {
		capacity = audit.DefaultCapacity
	}
	return &auditRepo{
		capacity: capacity,
		events:   make([]audit.Event, 0, capacity),
	}
}

func (r *auditRepo) Add(ctx context.Context, e audit.Event) error {
	e.Metadata = copyMetadata(e.Metadata)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == r.capacity {
		// Shift left in place: drops the head, keeps the backing array.
		copy(r.events, r.events[1:])
		r.events[len(r.events)-1] = e
		return nil
	}

	r.events = append(r.events, e)
	return nil
}

func (r *auditRepo) Latest(ctx context.Context, limit int) ([]audit.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]audit.Event, len(r.events))
	copy(out, r.events)

	// Timestamps normally grow with insertion order, but the contract is
	// timestamp-descending, so sort rather than just reversing.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(out) {
		out = out[:limit]
	}

	for i := range out {
		out[i].Metadata = copyMetadata(out[i].Metadata)
	}
	return out, nil
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
