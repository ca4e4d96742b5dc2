package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/vote"
	"github.com/goodnessw/election-api/internal/logger"
)

// PostgresVoteRepository implements VoteRepository using GORM
type PostgresVoteRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresVoteRepository creates a new PostgreSQL vote repository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{
		db:  db,
		log: logger.Repository("vote"),
	}
}

// isUniqueViolation reports whether err is a unique-constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Create inserts a vote and increments the contestant's vote_count in the
// same transaction. A unique-constraint violation on the normalized name is
// the authoritative duplicate signal and maps to ErrDuplicateVote.
func (r *PostgresVoteRepository) Create(v *vote.Vote) error {
	r.log.Debug("creating new vote", "vote_id", v.ID, "election_id", v.ElectionSlug, "contestant_id", v.ContestantID)

	if err := v.Validate(); err != nil {
		r.log.Error("vote validation failed", "error", err, "vote_id", v.ID)
		return fmt.Errorf("vote validation failed: %w", err)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}

		return tx.Exec("SELECT increment_vote_count(?)", v.ContestantID).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Info("duplicate vote rejected", "voter_name_lower", v.VoterNameLower, "election_id", v.ElectionSlug)
			return ErrDuplicateVote
		}
		r.log.Error("failed to create vote", "error", err, "vote_id", v.ID)
		return fmt.Errorf("failed to create vote: %w", err)
	}

	r.log.Info("vote created successfully", "vote_id", v.ID, "election_id", v.ElectionSlug, "contestant_id", v.ContestantID)
	return nil
}

func (r *PostgresVoteRepository) GetByID(id string) (*vote.Vote, error) {
	r.log.Debug("retrieving vote by ID", "vote_id", id)

	voteID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("invalid vote ID format", "vote_id", id, "error", err)
		return nil, fmt.Errorf("invalid vote ID format: %w", err)
	}

	var v vote.Vote
	if err := r.db.Preload("Contestant").First(&v, "id = ?", voteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("vote not found", "vote_id", id)
			return nil, ErrNotFound
		}
		r.log.Error("failed to retrieve vote", "vote_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve vote: %w", err)
	}

	return &v, nil
}

// HasVoted reports whether a vote with this normalized name already exists
// for the election. This is the best-effort pre-check; the unique index is
// the race-safe guard.
func (r *PostgresVoteRepository) HasVoted(normalizedName, electionSlug string) (bool, error) {
	r.log.Debug("checking voting status", "voter_name_lower", normalizedName, "election_id", electionSlug)

	if normalizedName == "" {
		return false, errors.New("normalized name cannot be empty")
	}
	if electionSlug == "" {
		return false, errors.New("election ID cannot be empty")
	}

	var count int64
	if err := r.db.Model(&vote.Vote{}).
		Where("voter_name_lower = ? AND election_id = ?", normalizedName, electionSlug).
		Count(&count).Error; err != nil {
		r.log.Error("failed to check voting status", "voter_name_lower", normalizedName, "election_id", electionSlug, "error", err)
		return false, fmt.Errorf("failed to check voting status: %w", err)
	}

	hasVoted := count > 0
	r.log.Debug("voting status checked", "voter_name_lower", normalizedName, "election_id", electionSlug, "has_voted", hasVoted)
	return hasVoted, nil
}

// GetAllPaginated lists votes joined with their contestant, newest first
func (r *PostgresVoteRepository) GetAllPaginated(params PaginationParams) (*PaginatedResult, error) {
	r.log.Debug("retrieving votes with pagination", "page", params.Page, "page_size", params.PageSize)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 10
	}
	if params.PageSize > 100 {
		params.PageSize = 100 // Maximum page size limit
	}

	offset := (params.Page - 1) * params.PageSize

	var total int64
	if err := r.db.Model(&vote.Vote{}).Count(&total).Error; err != nil {
		r.log.Error("failed to count votes", "error", err)
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	var votes []*vote.Vote
	if err := r.db.Preload("Contestant").
		Offset(offset).Limit(params.PageSize).
		Order("created_at DESC").
		Find(&votes).Error; err != nil {
		r.log.Error("failed to retrieve paginated votes", "error", err)
		return nil, fmt.Errorf("failed to retrieve paginated votes: %w", err)
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	result := &PaginatedResult{
		Data:       votes,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}

	r.log.Debug("paginated votes retrieved successfully",
		"page", params.Page,
		"page_size", params.PageSize,
		"total", total,
		"returned_count", len(votes))

	return result, nil
}

// Delete removes a vote and decrements the contestant's vote_count in the
// same transaction
func (r *PostgresVoteRepository) Delete(id string) error {
	r.log.Debug("deleting vote", "vote_id", id)

	voteID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("invalid vote ID format", "vote_id", id, "error", err)
		return fmt.Errorf("invalid vote ID format: %w", err)
	}

	var v vote.Vote
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ?", voteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to check vote existence: %w", err)
		}

		if err := tx.Delete(&v).Error; err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}

		return tx.Exec("SELECT decrement_vote_count(?)", v.ContestantID).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.log.Warn("attempted to delete non-existent vote", "vote_id", id)
			return err
		}
		r.log.Error("failed to delete vote", "vote_id", id, "error", err)
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	r.log.Info("vote deleted successfully", "vote_id", id, "election_id", v.ElectionSlug, "contestant_id", v.ContestantID)
	return nil
}

// Count returns the total number of vote rows
func (r *PostgresVoteRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&vote.Vote{}).Count(&count).Error; err != nil {
		r.log.Error("failed to count votes", "error", err)
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
