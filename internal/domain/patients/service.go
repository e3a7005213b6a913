package patients

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
	MRN         string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Phone       string
	Email       string
}

// Create registers a new patient with status ACTIVE. Duplicate MRNs are
// rejected by the repository in the same step that reserves the MRN, so two
// concurrent creates with one MRN admit exactly one winner.
func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	mrn := strings.TrimSpace(in.MRN)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)

	if mrn == "" || first == "" || last == "" {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:          uuid.NewString(),
		MRN:         mrn,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: in.DateOfBirth,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByMRN(ctx context.Context, mrn string) (Patient, error) {
	mrn = strings.TrimSpace(mrn)
	if mrn == "" {
		return Patient{}, ErrInvalidInput
	}
	return s.repo.GetByMRN(ctx, mrn)
}

func (s *Service) Search(ctx context.Context, query, status string) ([]Patient, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), strings.TrimSpace(status))
}

// UpdateStatus replaces the stored record with the same fields and the new
// status. Read-then-replace is not atomic against a concurrent update to the
// same id: the later Update wins and the earlier snapshot is discarded.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Patient, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return Patient{}, err
	}

	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Patient{}, err
	}

	p.Status = st
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Delete removes the patient record and its MRN index entry. The appointment
// cascade runs before this, at the handler.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
