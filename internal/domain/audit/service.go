package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

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

// Record appends one event for a successful mutation. An empty actor becomes
// the "system" sentinel. The timestamp only needs to be wall-clock reasonable;
// it is used for descending-sort display, not for strict ordering.
func (s *Service) Record(ctx context.Context, actor, action, entityType, entityID string, metadata map[string]any) (Event, error) {
	action = strings.TrimSpace(action)
	entityType = strings.TrimSpace(entityType)
	entityID = strings.TrimSpace(entityID)
	if action == "" || entityType == "" || entityID == "" {
		return Event{}, ErrInvalidInput
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = ActorSystem
	}

	e := Event{
		ID:         uuid.NewString(),
		Timestamp:  s.now(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}

	if err := s.repo.Add(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Latest(ctx context.Context, limit int) ([]Event, error) {
	return s.repo.Latest(ctx, limit)
}
