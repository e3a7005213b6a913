package appointments

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
// @Enum SCHEDULED, COMPLETED, CANCELED
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// ParseStatus validates a requested status target against the allow-list.
// There is no transition matrix: any status may move to any allowed target,
// including itself. Input is matched case-insensitively and stored uppercase.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(StatusScheduled):
		return StatusScheduled, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	case string(StatusCanceled):
		return StatusCanceled, nil
	}
	return "", ErrInvalidStatus
}

// Appointment references its patient by id value only. The patient must exist
// at creation time; there is no live foreign-key enforcement afterward.
type Appointment struct {
	ID        string
	PatientID string

	ScheduledAt time.Time
	Department  string
	Provider    string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
