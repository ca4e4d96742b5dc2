package election

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when a lifecycle change is not
// allowed from the election's current status
var ErrInvalidTransition = errors.New("invalid election status transition")

// Election represents a time-bounded voting event. The human-chosen Slug
// (election_id) is the scoping key used by votes, not the internal UUID.
type Election struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string     `json:"name" gorm:"not null"`
	Slug      string     `json:"election_id" gorm:"column:election_id;uniqueIndex;not null"`
	Status    Status     `json:"status" gorm:"type:election_status;not null;default:'inactive'"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Election) TableName() string {
	return "elections"
}

// BeforeCreate sets a UUID before creating the record
func (e *Election) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewElection creates a new election. Elections always start inactive.
func NewElection(name, slug string) *Election {
	return &Election{
		ID:        uuid.New(),
		Name:      name,
		Slug:      strings.TrimSpace(slug),
		Status:    StatusInactive,
		CreatedAt: time.Now(),
	}
}

// IsActive reports whether the election currently accepts votes
func (e *Election) IsActive() bool {
	return e.Status == StatusActive
}

// CanTransitionTo checks if the election can transition to a new status.
// Start moves any election to active (re-starting the active one is an
// idempotent demote-and-activate), End closes an active election, and
// Reset returns any election to inactive.
func (e *Election) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusInactive: {StatusActive},
		StatusActive:   {StatusActive, StatusEnded, StatusInactive},
		StatusEnded:    {StatusActive, StatusInactive},
	}

	allowedTransitions, exists := transitions[e.Status]
	if !exists {
		return false
	}

	return slices.Contains(allowedTransitions, newStatus)
}

// UpdateStatus updates the status if the transition is valid
func (e *Election) UpdateStatus(newStatus Status) error {
	if !e.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, e.Status, newStatus)
	}
	e.Status = newStatus
	return nil
}

// Validate checks if the election data is valid
func (e *Election) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(e.Slug) == "" {
		return fmt.Errorf("election_id is required")
	}
	return nil
}

// Status represents the lifecycle status of an election
type Status byte

const (
	StatusInactive Status = iota
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Status) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid status: %s", str)
	}
	*s = status
	return nil
}

// StatusFromString converts a string to a Status
func StatusFromString(s string) (Status, bool) {
	switch s {
	case "inactive":
		return StatusInactive, true
	case "active":
		return StatusActive, true
	case "ended":
		return StatusEnded, true
	default:
		return StatusInactive, false
	}
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *Status) Scan(value interface{}) error {
	if value == nil {
		*s = StatusInactive
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", value)
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid status value: %s", str)
	}
	*s = status
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}
