package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/logger"
)

// PostgresContestantRepository implements ContestantRepository using GORM
type PostgresContestantRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresContestantRepository creates a new PostgreSQL contestant repository
func NewPostgresContestantRepository(db *gorm.DB) *PostgresContestantRepository {
	return &PostgresContestantRepository{
		db:  db,
		log: logger.Repository("contestant"),
	}
}

func (r *PostgresContestantRepository) Create(c *contestant.Contestant) error {
	r.log.Debug("creating new contestant", "contestant_id", c.ID, "name", c.Name)

	if err := c.Validate(); err != nil {
		r.log.Error("contestant validation failed", "error", err, "contestant_id", c.ID)
		return fmt.Errorf("contestant validation failed: %w", err)
	}

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("failed to create contestant", "error", err, "contestant_id", c.ID)
		return fmt.Errorf("failed to create contestant: %w", err)
	}

	r.log.Info("contestant created successfully", "contestant_id", c.ID, "name", c.Name)
	return nil
}

func (r *PostgresContestantRepository) GetByID(id string) (*contestant.Contestant, error) {
	r.log.Debug("retrieving contestant by ID", "contestant_id", id)

	contestantID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("invalid contestant ID format", "contestant_id", id, "error", err)
		return nil, fmt.Errorf("invalid contestant ID format: %w", err)
	}

	var c contestant.Contestant
	if err := r.db.First(&c, "id = ?", contestantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("contestant not found", "contestant_id", id)
			return nil, ErrNotFound
		}
		r.log.Error("failed to retrieve contestant", "contestant_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve contestant: %w", err)
	}

	return &c, nil
}

// GetAll lists contestants ordered by vote_count descending, which is the
// ranking order used by both the voting page and the reports
func (r *PostgresContestantRepository) GetAll() ([]*contestant.Contestant, error) {
	r.log.Debug("retrieving all contestants")

	var contestants []*contestant.Contestant
	if err := r.db.Order("vote_count DESC").Find(&contestants).Error; err != nil {
		r.log.Error("failed to retrieve contestants", "error", err)
		return nil, fmt.Errorf("failed to retrieve contestants: %w", err)
	}

	r.log.Debug("contestants retrieved successfully", "count", len(contestants))
	return contestants, nil
}

func (r *PostgresContestantRepository) Update(c *contestant.Contestant) error {
	r.log.Debug("updating contestant", "contestant_id", c.ID, "name", c.Name)

	if err := c.Validate(); err != nil {
		r.log.Error("contestant validation failed", "error", err, "contestant_id", c.ID)
		return fmt.Errorf("contestant validation failed: %w", err)
	}

	var existing contestant.Contestant
	if err := r.db.First(&existing, "id = ?", c.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Error("contestant not found for update", "contestant_id", c.ID)
			return ErrNotFound
		}
		return fmt.Errorf("failed to check contestant existence: %w", err)
	}

	// Preserve the counter; profile updates never touch vote_count
	c.VoteCount = existing.VoteCount

	if err := r.db.Save(c).Error; err != nil {
		r.log.Error("failed to update contestant", "error", err, "contestant_id", c.ID)
		return fmt.Errorf("failed to update contestant: %w", err)
	}

	r.log.Info("contestant updated successfully", "contestant_id", c.ID, "name", c.Name)
	return nil
}

// UpdatePhotoURL stores the public URL of an uploaded photo
func (r *PostgresContestantRepository) UpdatePhotoURL(id, photoURL string) error {
	r.log.Debug("updating contestant photo", "contestant_id", id)

	contestantID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid contestant ID format: %w", err)
	}

	result := r.db.Model(&contestant.Contestant{}).
		Where("id = ?", contestantID).
		Update("photo_url", photoURL)
	if result.Error != nil {
		r.log.Error("failed to update contestant photo", "contestant_id", id, "error", result.Error)
		return fmt.Errorf("failed to update contestant photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("contestant photo updated", "contestant_id", id)
	return nil
}

// Delete removes a contestant; dependent votes cascade at the database
func (r *PostgresContestantRepository) Delete(id string) error {
	r.log.Debug("deleting contestant", "contestant_id", id)

	contestantID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid contestant ID format: %w", err)
	}

	var c contestant.Contestant
	if err := r.db.First(&c, "id = ?", contestantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("attempted to delete non-existent contestant", "contestant_id", id)
			return ErrNotFound
		}
		return fmt.Errorf("failed to check contestant existence: %w", err)
	}

	if err := r.db.Delete(&c).Error; err != nil {
		r.log.Error("failed to delete contestant", "contestant_id", id, "error", err)
		return fmt.Errorf("failed to delete contestant: %w", err)
	}

	r.log.Info("contestant deleted successfully", "contestant_id", id, "name", c.Name)
	return nil
}

// Count returns the total number of contestants
func (r *PostgresContestantRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&contestant.Contestant{}).Count(&count).Error; err != nil {
		r.log.Error("failed to count contestants", "error", err)
		return 0, fmt.Errorf("failed to count contestants: %w", err)
	}
	return count, nil
}
