package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Rambabu64681/Health-API/internal/domain/appointments"
)

type appointmentRepo struct {
	mu        sync.RWMutex
	byID      map[string]appointments.Appointment
	byPatient map[string]map[string]struct{}
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID:      make(map[string]appointments.Appointment),
		byPatient: make(map[string]map[string]struct{}),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if strings.TrimSpace(a.PatientID) == "" {
		return errors.New("appointment patient id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}

	r.byID[a.ID] = a
	r.index(a)
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return appointments.ErrNotFound
	}

	r.byID[a.ID] = a
	r.index(a) // idempotent if already present
	return nil
}

// index adds the appointment to its patient's set. Callers hold the lock.
func (r *appointmentRepo) index(a appointments.Appointment) {
	set, ok := r.byPatient[a.PatientID]
	if !ok {
		set = make(map[string]struct{})
		r.byPatient[a.PatientID] = set
	}
	set[a.ID] = struct{}{}
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for id := range r.byPatient[patientID] {
		a, ok := r.byID[id]
		if !ok {
			// stale index entry, skip silently
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})

	return out, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil
	}

	delete(r.byID, id)
	if set, ok := r.byPatient[a.PatientID]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(r.byPatient, a.PatientID)
		}
	}
	return nil
}
