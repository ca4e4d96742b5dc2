package services

import (
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/realtime"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

// ElectionService handles election lifecycle operations and fans out
// change notifications after each transition
type ElectionService struct {
	electionRepo postgres.ElectionRepository
	hub          *realtime.Hub
	validator    validation.ElectionValidation
}

// NewElectionService creates an election service. The hub may be nil in
// tests; change notifications are then skipped.
func NewElectionService(electionRepo postgres.ElectionRepository, hub *realtime.Hub) *ElectionService {
	return &ElectionService{
		electionRepo: electionRepo,
		hub:          hub,
		validator:    validation.ElectionValidation{},
	}
}

// CreateElectionRequest is a request to create an election
type CreateElectionRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"election_id" binding:"required"`
}

// Create validates and stores a new election. New elections always
// begin inactive.
func (s *ElectionService) Create(req CreateElectionRequest) (*election.Election, error) {
	if err := s.validator.ValidateElectionName(req.Name); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateElectionSlug(req.Slug); err != nil {
		return nil, err
	}

	e := election.NewElection(req.Name, req.Slug)
	if err := s.electionRepo.Create(e); err != nil {
		return nil, err
	}

	s.notifyElections()
	return e, nil
}

// GetAll lists all elections, newest first
func (s *ElectionService) GetAll() ([]*election.Election, error) {
	return s.electionRepo.GetAll()
}

// GetActive returns the currently active election
func (s *ElectionService) GetActive() (*election.Election, error) {
	return s.electionRepo.GetActive()
}

// Start activates an election; any other active election is demoted in
// the same transaction so at most one is ever active
func (s *ElectionService) Start(id string) (*election.Election, error) {
	if err := validation.ValidateUUID(id, "election id"); err != nil {
		return nil, err
	}

	e, err := s.electionRepo.Start(id)
	if err != nil {
		return nil, err
	}

	s.notifyElections()
	return e, nil
}

// End closes an active election
func (s *ElectionService) End(id string) (*election.Election, error) {
	if err := validation.ValidateUUID(id, "election id"); err != nil {
		return nil, err
	}

	e, err := s.electionRepo.End(id)
	if err != nil {
		return nil, err
	}

	s.notifyElections()
	return e, nil
}

// Reset wipes an election's ballots, zeroes the contestant counters and
// returns the election to inactive. Contestant standings change too, so
// both collections are notified.
func (s *ElectionService) Reset(id string) (*election.Election, error) {
	if err := validation.ValidateUUID(id, "election id"); err != nil {
		return nil, err
	}

	e, err := s.electionRepo.Reset(id)
	if err != nil {
		return nil, err
	}

	s.notifyElections()
	if s.hub != nil {
		s.hub.NotifyChange(realtime.CollectionContestants)
	}
	return e, nil
}

// Delete removes an election record
func (s *ElectionService) Delete(id string) error {
	if err := validation.ValidateUUID(id, "election id"); err != nil {
		return err
	}

	if err := s.electionRepo.Delete(id); err != nil {
		return err
	}

	s.notifyElections()
	return nil
}

func (s *ElectionService) notifyElections() {
	if s.hub != nil {
		s.hub.NotifyChange(realtime.CollectionElections)
	}
}
