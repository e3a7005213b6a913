package appointments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	// Create inserts the record by id and adds the id to the owning patient's
	// index set. The two views never diverge.
	Create(ctx context.Context, a Appointment) error

	// Update replaces the record by id. ErrNotFound if absent.
	Update(ctx context.Context, a Appointment) error

	GetByID(ctx context.Context, id string) (Appointment, error)

	// ListByPatient returns the patient's appointments sorted ascending by
	// scheduled time. Stale index entries are skipped, never surfaced. A
	// patient with no appointments yields an empty slice, not an error.
	ListByPatient(ctx context.Context, patientID string) ([]Appointment, error)

	// Delete removes the record and its entry from the owning patient's index
	// set. No-op if absent.
	Delete(ctx context.Context, id string) error
}
