package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Rambabu64681/Health-API/internal/domain/patients"
)

type patientRepo struct {
	mu      sync.RWMutex
	byID    map[string]patients.Patient
	idByMRN map[string]string
}

func NewPatientRepo() patients.Repository {
	return &patientRepo{
		byID:    make(map[string]patients.Patient),
		idByMRN: make(map[string]string),
	}
}

// Create reserves the MRN and inserts the record under one lock, so a
// duplicate MRN is rejected atomically instead of check-then-act at the
// caller. No observer can see the index without the record or vice versa.
func (r *patientRepo) Create(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if strings.TrimSpace(p.MRN) == "" {
		return errors.New("patient mrn required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("patient already exists")
	}
	if _, taken := r.idByMRN[p.MRN]; taken {
		return patients.ErrMRNExists
	}

	r.byID[p.ID] = p
	r.idByMRN[p.MRN] = p.ID
	return nil
}

func (r *patientRepo) Update(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return patients.ErrNotFound
	}

	// MRN is immutable, so the index entry already points here.
	r.byID[p.ID] = p
	r.idByMRN[p.MRN] = p.ID
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

// GetByMRN is exact and case-sensitive. A stale index entry (pointing at an
// id no longer present) reads as absent.
func (r *patientRepo) GetByMRN(ctx context.Context, mrn string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByMRN[mrn]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *patientRepo) Search(ctx context.Context, query, status string) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	st := strings.TrimSpace(status)

	out := make([]patients.Patient, 0)
	for _, p := range r.byID {
		if st != "" && !strings.EqualFold(string(p.Status), st) {
			continue
		}
		if q != "" {
			name := strings.ToLower(p.FullName())
			mrn := strings.ToLower(p.MRN)
			if !strings.Contains(name, q) && !strings.Contains(mrn, q) {
				continue
			}
		}
		out = append(out, p)
	}

	// Ascending by (last name, first name), byte-wise.
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})

	return out, nil
}

func (r *patientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil
	}

	delete(r.byID, id)
	if r.idByMRN[p.MRN] == id {
		delete(r.idByMRN, p.MRN)
	}
	return nil
}
