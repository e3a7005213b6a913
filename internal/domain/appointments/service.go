package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	ScheduledAt time.Time
	Department  string
	Provider    string
}

// Create books an appointment for the patient with status SCHEDULED. The
// caller has already verified that the patient exists.
func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Appointment, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.ScheduledAt.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	dept := strings.TrimSpace(in.Department)
	provider := strings.TrimSpace(in.Provider)
	if dept == "" || provider == "" {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		ScheduledAt: in.ScheduledAt,
		Department:  dept,
		Provider:    provider,
		Status:      StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	return s.repo.ListByPatient(ctx, strings.TrimSpace(patientID))
}

// UpdateStatus replaces the stored record with the new status. Same
// last-writer-wins caveat as the patient status update: the read and the
// replace are two steps, not one.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Appointment, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return Appointment{}, err
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, err
	}

	a.Status = st
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// DeleteByPatient removes every appointment currently indexed under the
// patient and returns the removed ids. The caller deletes the patient record
// only after this returns, so a partial failure never orphans appointments
// behind an already-deleted patient.
func (s *Service) DeleteByPatient(ctx context.Context, patientID string) ([]string, error) {
	appts, err := s.repo.ListByPatient(ctx, strings.TrimSpace(patientID))
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(appts))
	for _, a := range appts {
		if err := s.repo.Delete(ctx, a.ID); err != nil {
			return removed, err
		}
		removed = append(removed, a.ID)
	}
	return removed, nil
}
