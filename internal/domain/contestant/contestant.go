package contestant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Contestant represents a candidate profile eligible to receive votes.
// VoteCount is a denormalized counter; it is maintained in the same
// transaction that writes or deletes the vote row.
type Contestant struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string         `json:"name" gorm:"not null"`
	Tagline      string         `json:"tagline"`
	Bio          string         `json:"bio" gorm:"type:text"`
	Achievements pq.StringArray `json:"achievements" gorm:"type:text[]"`
	Vision       string         `json:"vision" gorm:"type:text"`
	PhotoURL     string         `json:"photo_url"`
	VideoURL     string         `json:"video_url"`
	VoteCount    int            `json:"vote_count" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Contestant) TableName() string {
	return "contestants"
}

// BeforeCreate sets a UUID before creating the record
func (c *Contestant) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewContestant creates a new contestant profile
func NewContestant(name, tagline, bio, vision string, achievements []string) *Contestant {
	return &Contestant{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Tagline:      tagline,
		Bio:          bio,
		Achievements: achievements,
		Vision:       vision,
		CreatedAt:    time.Now(),
	}
}

// Validate checks if the contestant data is valid
func (c *Contestant) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.VoteCount < 0 {
		return fmt.Errorf("vote_count cannot be negative")
	}
	return nil
}
