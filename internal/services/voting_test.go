package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

func newVotingFixture(t *testing.T, activate bool) (*VotingService, *fakeVoteRepo, *contestant.Contestant) {
	t.Helper()

	e := election.NewElection("General Election", "general-2026")
	if activate {
		require.NoError(t, e.UpdateStatus(election.StatusActive))
	}

	c := contestant.NewContestant("Jane Doe", "For the people", "", "", nil)

	voteRepo := &fakeVoteRepo{}
	electionRepo := &fakeElectionRepo{elections: []*election.Election{e}}
	contestantRepo := &fakeContestantRepo{contestants: []*contestant.Contestant{c}}

	return NewVotingService(voteRepo, electionRepo, contestantRepo, nil), voteRepo, c
}

func TestSubmitVote(t *testing.T) {
	svc, voteRepo, c := newVotingFixture(t, true)

	v, err := svc.SubmitVote(SubmitVoteRequest{
		FirstName:    "John",
		LastName:     "Smith",
		ContestantID: c.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "John Smith", v.VoterName)
	assert.Equal(t, "john smith", v.VoterNameLower)
	assert.Equal(t, "general-2026", v.ElectionSlug)
	assert.Len(t, voteRepo.votes, 1)
}

func TestSubmitVoteRejectsDuplicateName(t *testing.T) {
	svc, voteRepo, c := newVotingFixture(t, true)

	_, err := svc.SubmitVote(SubmitVoteRequest{
		FirstName: "John", LastName: "Smith", ContestantID: c.ID.String(),
	})
	require.NoError(t, err)

	// Same name with different casing and padding is the same voter
	_, err = svc.SubmitVote(SubmitVoteRequest{
		FirstName: "  JOHN ", LastName: " smith ", ContestantID: c.ID.String(),
	})
	assert.ErrorIs(t, err, postgres.ErrDuplicateVote)
	assert.Len(t, voteRepo.votes, 1)
}

func TestSubmitVoteRejectsWhenNoActiveElection(t *testing.T) {
	svc, voteRepo, c := newVotingFixture(t, false)

	_, err := svc.SubmitVote(SubmitVoteRequest{
		FirstName: "John", LastName: "Smith", ContestantID: c.ID.String(),
	})
	assert.ErrorIs(t, err, ErrVotingClosed)
	assert.Empty(t, voteRepo.votes)
}

func TestSubmitVoteRejectsInvalidNamesBeforeAnyWrite(t *testing.T) {
	svc, voteRepo, c := newVotingFixture(t, true)

	tests := []struct {
		name string
		req  SubmitVoteRequest
	}{
		{"digits in first name", SubmitVoteRequest{FirstName: "John2", LastName: "Smith", ContestantID: c.ID.String()}},
		{"too short last name", SubmitVoteRequest{FirstName: "John", LastName: "S", ContestantID: c.ID.String()}},
		{"empty first name", SubmitVoteRequest{FirstName: "  ", LastName: "Smith", ContestantID: c.ID.String()}},
		{"symbols in last name", SubmitVoteRequest{FirstName: "John", LastName: "Smith!", ContestantID: c.ID.String()}},
		{"bad contestant id", SubmitVoteRequest{FirstName: "John", LastName: "Smith", ContestantID: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitVote(tt.req)
			assert.Error(t, err)
			assert.True(t, validation.IsValidationError(err))
			assert.Empty(t, voteRepo.votes)
		})
	}
}

func TestSubmitVoteRejectsUnknownContestant(t *testing.T) {
	svc, _, _ := newVotingFixture(t, true)

	_, err := svc.SubmitVote(SubmitVoteRequest{
		FirstName:    "John",
		LastName:     "Smith",
		ContestantID: "a2c3e836-95a7-4a04-9a3f-6e9e40a2a2c1",
	})
	assert.ErrorIs(t, err, ErrContestantNotFound)
}

func TestHasVoted(t *testing.T) {
	svc, _, c := newVotingFixture(t, true)

	voted, slug, err := svc.HasVoted("John", "Smith")
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Equal(t, "general-2026", slug)

	_, err = svc.SubmitVote(SubmitVoteRequest{
		FirstName: "John", LastName: "Smith", ContestantID: c.ID.String(),
	})
	require.NoError(t, err)

	voted, _, err = svc.HasVoted(" john ", " SMITH ")
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestHasVotedWithoutActiveElection(t *testing.T) {
	svc, _, _ := newVotingFixture(t, false)

	_, _, err := svc.HasVoted("John", "Smith")
	assert.ErrorIs(t, err, ErrVotingClosed)
}

func TestDeleteVote(t *testing.T) {
	svc, voteRepo, c := newVotingFixture(t, true)

	v, err := svc.SubmitVote(SubmitVoteRequest{
		FirstName: "John", LastName: "Smith", ContestantID: c.ID.String(),
	})
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteVote(v.ID.String()))
	assert.Empty(t, voteRepo.votes)

	assert.ErrorIs(t, svc.DeleteVote(v.ID.String()), postgres.ErrNotFound)
}
