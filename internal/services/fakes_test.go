package services

import (
	"errors"

	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/domain/vote"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

// In-memory repository fakes backing the service tests

type fakeVoteRepo struct {
	votes     []*vote.Vote
	createErr error
}

func (f *fakeVoteRepo) Create(v *vote.Vote) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.votes {
		if existing.VoterNameLower == v.VoterNameLower && existing.ElectionSlug == v.ElectionSlug {
			return postgres.ErrDuplicateVote
		}
	}
	f.votes = append(f.votes, v)
	return nil
}

func (f *fakeVoteRepo) GetByID(id string) (*vote.Vote, error) {
	for _, v := range f.votes {
		if v.ID.String() == id {
			return v, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeVoteRepo) HasVoted(normalizedName, electionSlug string) (bool, error) {
	for _, v := range f.votes {
		if v.VoterNameLower == normalizedName && v.ElectionSlug == electionSlug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVoteRepo) GetAllPaginated(params postgres.PaginationParams) (*postgres.PaginatedResult, error) {
	return &postgres.PaginatedResult{
		Data:  f.votes,
		Total: int64(len(f.votes)),
		Page:  params.Page,
	}, nil
}

func (f *fakeVoteRepo) Delete(id string) error {
	for i, v := range f.votes {
		if v.ID.String() == id {
			f.votes = append(f.votes[:i], f.votes[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeVoteRepo) Count() (int64, error) {
	return int64(len(f.votes)), nil
}

type fakeElectionRepo struct {
	elections []*election.Election
	getAllErr error
}

func (f *fakeElectionRepo) Create(e *election.Election) error {
	for _, existing := range f.elections {
		if existing.Slug == e.Slug {
			return postgres.ErrDuplicateSlug
		}
	}
	f.elections = append(f.elections, e)
	return nil
}

func (f *fakeElectionRepo) GetByID(id string) (*election.Election, error) {
	for _, e := range f.elections {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeElectionRepo) GetActive() (*election.Election, error) {
	for _, e := range f.elections {
		if e.IsActive() {
			return e, nil
		}
	}
	return nil, postgres.ErrNoActiveElection
}

func (f *fakeElectionRepo) GetAll() ([]*election.Election, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	return f.elections, nil
}

func (f *fakeElectionRepo) Start(id string) (*election.Election, error) {
	target, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := target.UpdateStatus(election.StatusActive); err != nil {
		return nil, err
	}
	for _, e := range f.elections {
		if e.ID != target.ID {
			e.Status = election.StatusInactive
		}
	}
	return target, nil
}

func (f *fakeElectionRepo) End(id string) (*election.Election, error) {
	target, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := target.UpdateStatus(election.StatusEnded); err != nil {
		return nil, err
	}
	return target, nil
}

func (f *fakeElectionRepo) Reset(id string) (*election.Election, error) {
	target, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	target.Status = election.StatusInactive
	target.StartsAt = nil
	target.EndsAt = nil
	return target, nil
}

func (f *fakeElectionRepo) Delete(id string) error {
	for i, e := range f.elections {
		if e.ID.String() == id {
			f.elections = append(f.elections[:i], f.elections[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeElectionRepo) CountActive() (int64, error) {
	var count int64
	for _, e := range f.elections {
		if e.IsActive() {
			count++
		}
	}
	return count, nil
}

type fakeContestantRepo struct {
	contestants []*contestant.Contestant
	getAllErr   error
}

func (f *fakeContestantRepo) Create(c *contestant.Contestant) error {
	f.contestants = append(f.contestants, c)
	return nil
}

func (f *fakeContestantRepo) GetByID(id string) (*contestant.Contestant, error) {
	for _, c := range f.contestants {
		if c.ID.String() == id {
			return c, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeContestantRepo) GetAll() ([]*contestant.Contestant, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	return f.contestants, nil
}

func (f *fakeContestantRepo) Update(c *contestant.Contestant) error {
	for i, existing := range f.contestants {
		if existing.ID == c.ID {
			f.contestants[i] = c
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeContestantRepo) UpdatePhotoURL(id, photoURL string) error {
	c, err := f.GetByID(id)
	if err != nil {
		return err
	}
	c.PhotoURL = photoURL
	return nil
}

func (f *fakeContestantRepo) Delete(id string) error {
	for i, c := range f.contestants {
		if c.ID.String() == id {
			f.contestants = append(f.contestants[:i], f.contestants[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (f *fakeContestantRepo) Count() (int64, error) {
	return int64(len(f.contestants)), nil
}

type fakeAdminRepo struct {
	admins []*admin.Admin
}

func (f *fakeAdminRepo) Create(a *admin.Admin) error {
	f.admins = append(f.admins, a)
	return nil
}

func (f *fakeAdminRepo) GetByUsername(username string) (*admin.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, postgres.ErrNotFound
}

// Interface conformance
var (
	_ postgres.VoteRepository       = (*fakeVoteRepo)(nil)
	_ postgres.ElectionRepository   = (*fakeElectionRepo)(nil)
	_ postgres.ContestantRepository = (*fakeContestantRepo)(nil)
	_ postgres.AdminRepository      = (*fakeAdminRepo)(nil)

	errStorageDown = errors.New("storage down")
)
