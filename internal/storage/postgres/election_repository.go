package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/domain/vote"
	"github.com/goodnessw/election-api/internal/logger"
)

// PostgresElectionRepository implements ElectionRepository using GORM
type PostgresElectionRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresElectionRepository creates a new PostgreSQL election repository
func NewPostgresElectionRepository(db *gorm.DB) *PostgresElectionRepository {
	return &PostgresElectionRepository{
		db:  db,
		log: logger.Repository("election"),
	}
}

func (r *PostgresElectionRepository) Create(e *election.Election) error {
	r.log.Debug("creating new election", "election_id", e.ID, "slug", e.Slug)

	if err := e.Validate(); err != nil {
		r.log.Error("election validation failed", "error", err, "election_id", e.ID)
		return fmt.Errorf("election validation failed: %w", err)
	}

	if err := r.db.Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("duplicate election slug", "slug", e.Slug)
			return ErrDuplicateSlug
		}
		r.log.Error("failed to create election", "error", err, "election_id", e.ID)
		return fmt.Errorf("failed to create election: %w", err)
	}

	r.log.Info("election created successfully", "election_id", e.ID, "slug", e.Slug)
	return nil
}

func (r *PostgresElectionRepository) GetByID(id string) (*election.Election, error) {
	r.log.Debug("retrieving election by ID", "election_id", id)

	electionID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("invalid election ID format", "election_id", id, "error", err)
		return nil, fmt.Errorf("invalid election ID format: %w", err)
	}

	var e election.Election
	if err := r.db.First(&e, "id = ?", electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("election not found", "election_id", id)
			return nil, ErrNotFound
		}
		r.log.Error("failed to retrieve election", "election_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve election: %w", err)
	}

	return &e, nil
}

// GetActive returns the single election with status=active, or
// ErrNoActiveElection when none exists
func (r *PostgresElectionRepository) GetActive() (*election.Election, error) {
	r.log.Debug("retrieving active election")

	var e election.Election
	if err := r.db.Where("status = ?", election.StatusActive).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveElection
		}
		r.log.Error("failed to retrieve active election", "error", err)
		return nil, fmt.Errorf("failed to retrieve active election: %w", err)
	}

	return &e, nil
}

func (r *PostgresElectionRepository) GetAll() ([]*election.Election, error) {
	r.log.Debug("retrieving all elections")

	var elections []*election.Election
	if err := r.db.Order("created_at DESC").Find(&elections).Error; err != nil {
		r.log.Error("failed to retrieve elections", "error", err)
		return nil, fmt.Errorf("failed to retrieve elections: %w", err)
	}

	r.log.Debug("elections retrieved successfully", "count", len(elections))
	return elections, nil
}

// Start activates the target election and demotes every other election to
// inactive in one transaction, so at most one election is active at any time.
func (r *PostgresElectionRepository) Start(id string) (*election.Election, error) {
	r.log.Debug("starting election", "election_id", id)

	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid election ID format: %w", err)
	}

	var e election.Election
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", electionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to retrieve election: %w", err)
		}

		if err := e.UpdateStatus(election.StatusActive); err != nil {
			return err
		}

		if err := tx.Model(&election.Election{}).
			Where("id <> ?", electionID).
			Update("status", election.StatusInactive).Error; err != nil {
			return fmt.Errorf("failed to deactivate other elections: %w", err)
		}

		now := time.Now()
		e.StartsAt = &now
		return tx.Model(&election.Election{}).
			Where("id = ?", electionID).
			Updates(map[string]interface{}{
				"status":    election.StatusActive,
				"starts_at": now,
			}).Error
	})
	if err != nil {
		r.log.Error("failed to start election", "election_id", id, "error", err)
		return nil, err
	}

	r.log.Info("election started successfully", "election_id", id, "slug", e.Slug)
	return &e, nil
}

// End closes an active election
func (r *PostgresElectionRepository) End(id string) (*election.Election, error) {
	r.log.Debug("ending election", "election_id", id)

	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid election ID format: %w", err)
	}

	var e election.Election
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", electionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to retrieve election: %w", err)
		}

		if err := e.UpdateStatus(election.StatusEnded); err != nil {
			return err
		}

		now := time.Now()
		e.EndsAt = &now
		return tx.Model(&election.Election{}).
			Where("id = ?", electionID).
			Updates(map[string]interface{}{
				"status":  election.StatusEnded,
				"ends_at": now,
			}).Error
	})
	if err != nil {
		r.log.Error("failed to end election", "election_id", id, "error", err)
		return nil, err
	}

	r.log.Info("election ended successfully", "election_id", id, "slug", e.Slug)
	return &e, nil
}

// Reset deletes the election's votes, zeroes the vote_count on every
// contestant, and reverts the election to inactive with cleared timestamps,
// all in one transaction. The counter reset is deliberately not scoped to
// the election: contestants are shared across elections in the current
// model.
func (r *PostgresElectionRepository) Reset(id string) (*election.Election, error) {
	r.log.Debug("resetting election", "election_id", id)

	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid election ID format: %w", err)
	}

	var e election.Election
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", electionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to retrieve election: %w", err)
		}

		if err := tx.Where("election_id = ?", e.Slug).Delete(&vote.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete election votes: %w", err)
		}

		if err := tx.Model(&contestant.Contestant{}).
			Where("1 = 1").
			Update("vote_count", 0).Error; err != nil {
			return fmt.Errorf("failed to reset vote counts: %w", err)
		}

		e.Status = election.StatusInactive
		e.StartsAt = nil
		e.EndsAt = nil
		return tx.Model(&election.Election{}).
			Where("id = ?", electionID).
			Updates(map[string]interface{}{
				"status":    election.StatusInactive,
				"starts_at": nil,
				"ends_at":   nil,
			}).Error
	})
	if err != nil {
		r.log.Error("failed to reset election", "election_id", id, "error", err)
		return nil, err
	}

	r.log.Info("election reset successfully", "election_id", id, "slug", e.Slug)
	return &e, nil
}

// Delete removes the election record. Dependent votes are not removed here;
// they are scoped by the slug and cleaned up by Reset or left for audit.
func (r *PostgresElectionRepository) Delete(id string) error {
	r.log.Debug("deleting election", "election_id", id)

	electionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid election ID format: %w", err)
	}

	var e election.Election
	if err := r.db.First(&e, "id = ?", electionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("attempted to delete non-existent election", "election_id", id)
			return ErrNotFound
		}
		return fmt.Errorf("failed to check election existence: %w", err)
	}

	if err := r.db.Delete(&e).Error; err != nil {
		r.log.Error("failed to delete election", "election_id", id, "error", err)
		return fmt.Errorf("failed to delete election: %w", err)
	}

	r.log.Info("election deleted successfully", "election_id", id, "slug", e.Slug)
	return nil
}

// CountActive returns the number of elections with status=active
func (r *PostgresElectionRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&election.Election{}).
		Where("status = ?", election.StatusActive).
		Count(&count).Error; err != nil {
		r.log.Error("failed to count active elections", "error", err)
		return 0, fmt.Errorf("failed to count active elections: %w", err)
	}
	return count, nil
}
