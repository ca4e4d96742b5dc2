package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goodnessw/election-api/internal/domain/vote"
	"github.com/goodnessw/election-api/internal/realtime"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

// ErrVotingClosed is returned when a ballot arrives outside an active
// election
var ErrVotingClosed = errors.New("voting is not currently active")

// ErrContestantNotFound is returned when a ballot names an unknown
// contestant
var ErrContestantNotFound = errors.New("contestant not found")

// VotingService handles ballot submission and voter status checks
type VotingService struct {
	voteRepo       postgres.VoteRepository
	electionRepo   postgres.ElectionRepository
	contestantRepo postgres.ContestantRepository
	hub            *realtime.Hub
}

// NewVotingService creates a voting service. The hub may be nil in tests;
// change notifications are then skipped.
func NewVotingService(
	voteRepo postgres.VoteRepository,
	electionRepo postgres.ElectionRepository,
	contestantRepo postgres.ContestantRepository,
	hub *realtime.Hub,
) *VotingService {
	return &VotingService{
		voteRepo:       voteRepo,
		electionRepo:   electionRepo,
		contestantRepo: contestantRepo,
		hub:            hub,
	}
}

// SubmitVoteRequest is a ballot as submitted from the voting page
type SubmitVoteRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	ContestantID string `json:"contestant_id" binding:"required"`
}

// SubmitVote validates a ballot and records it against the currently
// active election. Name parts are validated before any read, the
// duplicate pre-check gives a friendly early rejection, and the unique
// index behind the vote insert settles any race between concurrent
// submissions of the same name.
func (s *VotingService) SubmitVote(req SubmitVoteRequest) (*vote.Vote, error) {
	if err := vote.ValidateNamePart(req.FirstName, "first_name"); err != nil {
		return nil, err
	}
	if err := vote.ValidateNamePart(req.LastName, "last_name"); err != nil {
		return nil, err
	}
	if err := validateContestantID(req.ContestantID); err != nil {
		return nil, err
	}

	active, err := s.electionRepo.GetActive()
	if err != nil {
		if errors.Is(err, postgres.ErrNoActiveElection) {
			return nil, ErrVotingClosed
		}
		return nil, fmt.Errorf("failed to resolve active election: %w", err)
	}

	contestantID, _ := uuid.Parse(req.ContestantID)
	if _, err := s.contestantRepo.GetByID(req.ContestantID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrContestantNotFound
		}
		return nil, fmt.Errorf("failed to resolve contestant: %w", err)
	}

	newVote := vote.NewVote(contestantID, active.Slug, req.FirstName, req.LastName)

	alreadyVoted, err := s.voteRepo.HasVoted(newVote.VoterNameLower, active.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check voting status: %w", err)
	}
	if alreadyVoted {
		return nil, postgres.ErrDuplicateVote
	}

	if err := s.voteRepo.Create(newVote); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.NotifyChange(realtime.CollectionContestants)
	}

	return newVote, nil
}

// HasVoted reports whether the given name has already voted in the
// active election, and which election that is
func (s *VotingService) HasVoted(firstName, lastName string) (bool, string, error) {
	if err := vote.ValidateNamePart(firstName, "first_name"); err != nil {
		return false, "", err
	}
	if err := vote.ValidateNamePart(lastName, "last_name"); err != nil {
		return false, "", err
	}

	active, err := s.electionRepo.GetActive()
	if err != nil {
		if errors.Is(err, postgres.ErrNoActiveElection) {
			return false, "", ErrVotingClosed
		}
		return false, "", fmt.Errorf("failed to resolve active election: %w", err)
	}

	probe := vote.NewVote(uuid.Nil, active.Slug, firstName, lastName)
	voted, err := s.voteRepo.HasVoted(probe.VoterNameLower, active.Slug)
	if err != nil {
		return false, "", fmt.Errorf("failed to check voting status: %w", err)
	}

	return voted, active.Slug, nil
}

// DeleteVote removes a single ballot and notifies listeners, since the
// contestant's counter changed with it
func (s *VotingService) DeleteVote(id string) error {
	if err := s.voteRepo.Delete(id); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.NotifyChange(realtime.CollectionContestants)
	}

	return nil
}

func validateContestantID(id string) error {
	return validation.ValidateUUID(id, "contestant_id")
}
