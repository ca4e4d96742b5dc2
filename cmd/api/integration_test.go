//go:build integration
// +build integration

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodnessw/election-api/internal/config"
	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/domain/vote"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration

func testConfig() *config.Config {
	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		sqlDB, err := db.DB()
		assert.NoError(t, err)

		err = sqlDB.Ping()
		assert.NoError(t, err, "Should be able to ping the database")

		sqlDB.Close()
	}
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		err = postgres.AutoMigrate(db)
		assert.NoError(t, err, "Should be able to run migrations")

		sqlDB, _ := db.DB()
		sqlDB.Close()
	}
}

func TestVoteDedupAgainstRealIndex(t *testing.T) {
	container, err := postgres.NewContainer(testConfig())
	require.NoError(t, err, "Should be able to initialize the repository container")
	defer container.Close()

	e := election.NewElection("Integration Election", "integration-election")
	require.NoError(t, container.Elections().Create(e))
	defer container.Elections().Delete(e.ID.String())

	c := contestant.NewContestant("Integration Candidate", "", "", "", nil)
	require.NoError(t, container.Contestants().Create(c))
	defer container.Contestants().Delete(c.ID.String())

	first := vote.NewVote(c.ID, e.Slug, "Inta", "Gration")
	require.NoError(t, container.Votes().Create(first))
	defer container.Votes().Delete(first.ID.String())

	// Same normalized name must bounce off the unique index
	duplicate := vote.NewVote(c.ID, e.Slug, "INTA", "gration")
	err = container.Votes().Create(duplicate)
	assert.ErrorIs(t, err, postgres.ErrDuplicateVote)

	refreshed, err := container.Contestants().GetByID(c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.VoteCount, "Counter should reflect exactly one accepted ballot")
}

func TestResetPurgesScopedVotesAndZeroesAllCounters(t *testing.T) {
	container, err := postgres.NewContainer(testConfig())
	require.NoError(t, err, "Should be able to initialize the repository container")
	defer container.Close()

	target := election.NewElection("Reset Target", "reset-target")
	require.NoError(t, container.Elections().Create(target))
	defer container.Elections().Delete(target.ID.String())

	bystander := election.NewElection("Reset Bystander", "reset-bystander")
	require.NoError(t, container.Elections().Create(bystander))
	defer container.Elections().Delete(bystander.ID.String())

	first := contestant.NewContestant("Reset Candidate One", "", "", "", nil)
	require.NoError(t, container.Contestants().Create(first))
	defer container.Contestants().Delete(first.ID.String())

	second := contestant.NewContestant("Reset Candidate Two", "", "", "", nil)
	require.NoError(t, container.Contestants().Create(second))
	defer container.Contestants().Delete(second.ID.String())

	targetVote := vote.NewVote(first.ID, target.Slug, "Resa", "Target")
	require.NoError(t, container.Votes().Create(targetVote))

	bystanderVote := vote.NewVote(second.ID, bystander.Slug, "Bysa", "Stander")
	require.NoError(t, container.Votes().Create(bystanderVote))
	defer container.Votes().Delete(bystanderVote.ID.String())

	reset, err := container.Elections().Reset(target.ID.String())
	require.NoError(t, err)
	assert.Equal(t, election.StatusInactive, reset.Status)
	assert.Nil(t, reset.StartsAt)
	assert.Nil(t, reset.EndsAt)

	// Vote purge is scoped to the reset election
	voted, err := container.Votes().HasVoted(targetVote.VoterNameLower, target.Slug)
	require.NoError(t, err)
	assert.False(t, voted, "Reset should delete the election's own votes")

	voted, err = container.Votes().HasVoted(bystanderVote.VoterNameLower, bystander.Slug)
	require.NoError(t, err)
	assert.True(t, voted, "Votes of other elections must survive a reset")

	// Counter zeroing is not scoped: every contestant returns to zero,
	// including one whose votes came from the other election
	for _, id := range []string{first.ID.String(), second.ID.String()} {
		refreshed, err := container.Contestants().GetByID(id)
		require.NoError(t, err)
		assert.Zero(t, refreshed.VoteCount, "Reset should zero every contestant's counter")
	}
}
