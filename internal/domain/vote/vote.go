package vote

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/validation"
)

// namePattern allows letters, whitespace, apostrophes and hyphens only.
// Digits and other symbols are rejected before any database write.
var namePattern = regexp.MustCompile(`^[A-Za-z\s'-]+$`)

// MinNameLength is the minimum length of each trimmed name part
const MinNameLength = 2

// Vote represents a single ballot binding a normalized voter name to a
// contestant within one election. ElectionSlug is the election's external
// identifier, not its UUID. The (voter_name_lower, election_id) pair is
// unique; the database index is the authoritative duplicate guard.
type Vote struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContestantID   uuid.UUID `json:"contestant_id" gorm:"type:uuid;not null"`
	ElectionSlug   string    `json:"election_id" gorm:"column:election_id;not null;uniqueIndex:idx_votes_name_election,priority:2"`
	VoterName      string    `json:"voter_name" gorm:"not null"`
	VoterNameLower string    `json:"voter_name_lower" gorm:"not null;uniqueIndex:idx_votes_name_election,priority:1"`
	FirstName      string    `json:"first_name" gorm:"not null"`
	LastName       string    `json:"last_name" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Contestant contestant.Contestant `json:"contestant,omitempty" gorm:"foreignKey:ContestantID"`
}

// TableName overrides the table name used by GORM
func (Vote) TableName() string {
	return "votes"
}

// BeforeCreate sets a UUID before creating the record
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// NewVote builds a vote from raw first/last name input. Names are trimmed,
// the full name is their concatenation, and the normalized dedup key is the
// lowercased full name.
func NewVote(contestantID uuid.UUID, electionSlug, firstName, lastName string) *Vote {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	fullName := first + " " + last

	return &Vote{
		ID:             uuid.New(),
		ContestantID:   contestantID,
		ElectionSlug:   electionSlug,
		VoterName:      fullName,
		VoterNameLower: NormalizeName(fullName),
		FirstName:      first,
		LastName:       last,
		CreatedAt:      time.Now(),
	}
}

// NormalizeName returns the trimmed, lowercased form of a name, used as the
// deduplication key
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateNamePart checks a single trimmed name component against the
// minimum length and allowed character class
func ValidateNamePart(value, fieldName string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return validation.Errorf("%s is required", fieldName)
	}
	if len(trimmed) < MinNameLength {
		return validation.Errorf("%s must be at least %d characters long", fieldName, MinNameLength)
	}
	if !namePattern.MatchString(trimmed) {
		return validation.Errorf("%s may only contain letters, spaces, apostrophes and hyphens", fieldName)
	}
	return nil
}

// Validate checks if the vote data is valid
func (v *Vote) Validate() error {
	if v.ContestantID == uuid.Nil {
		return fmt.Errorf("contestant_id is required")
	}
	if strings.TrimSpace(v.ElectionSlug) == "" {
		return fmt.Errorf("election_id is required")
	}
	if err := ValidateNamePart(v.FirstName, "first_name"); err != nil {
		return err
	}
	if err := ValidateNamePart(v.LastName, "last_name"); err != nil {
		return err
	}
	if v.VoterNameLower != NormalizeName(v.VoterName) {
		return fmt.Errorf("voter_name_lower must be the normalized voter_name")
	}
	return nil
}
