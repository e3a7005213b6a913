package patients

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a patient record.
// @Enum ACTIVE, INACTIVE
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ParseStatus validates a requested status target. The allowed set is a plain
// allow-list: both states are reachable from either state, including
// self-transitions. Input is matched case-insensitively and stored uppercase.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusInactive):
		return StatusInactive, nil
	}
	return "", ErrInvalidStatus
}

// Patient is a clinical patient record. ID and MRN are immutable after
// creation; everything else changes only by whole-record replacement.
type Patient struct {
	ID  string
	MRN string // Medical Record Number, unique business key

	FirstName string
	LastName  string

	DateOfBirth *time.Time
	Phone       string
	Email       string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName is the "first last" form used by Search.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
