package patients

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("patient not found")
	ErrMRNExists = errors.New("mrn already exists")
)

type Repository interface {
	// Create inserts a new record. The MRN reservation and the insert happen
	// atomically: if the MRN is already taken, ErrMRNExists and no change.
	Create(ctx context.Context, p Patient) error

	// Update replaces the whole record keyed by its ID. ErrNotFound if absent.
	Update(ctx context.Context, p Patient) error

	GetByID(ctx context.Context, id string) (Patient, error)

	// GetByMRN is an exact, case-sensitive match. ErrNotFound when absent or
	// when the index entry points at a record that no longer exists.
	GetByMRN(ctx context.Context, mrn string) (Patient, error)

	// Search filters by status (case-insensitive equality, empty matches all)
	// and by query (case-insensitive substring of "first last" or MRN, empty
	// matches all), sorted ascending by (last name, first name).
	Search(ctx context.Context, query, status string) ([]Patient, error)

	// Delete removes the record and its MRN index entry. No-op if absent.
	// Appointments are not touched; the cascade belongs to the caller.
	Delete(ctx context.Context, id string) error
}
