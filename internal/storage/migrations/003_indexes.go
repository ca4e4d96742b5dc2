package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// migration003Up creates the query and uniqueness indexes.
// The (voter_name_lower, election_id) unique index is the database-level
// dedup guarantee behind one-vote-per-name-per-election.
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_name_election
            ON votes (voter_name_lower, election_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_contestant_id ON votes (contestant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_created_at ON votes (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_elections_status ON elections (status)`,
		`CREATE INDEX IF NOT EXISTS idx_contestants_vote_count ON contestants (vote_count DESC)`,
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func migration003Down(db *gorm.DB) error {
	indexes := []string{
		`DROP INDEX IF EXISTS idx_votes_name_election`,
		`DROP INDEX IF EXISTS idx_votes_contestant_id`,
		`DROP INDEX IF EXISTS idx_votes_created_at`,
		`DROP INDEX IF EXISTS idx_elections_status`,
		`DROP INDEX IF EXISTS idx_contestants_vote_count`,
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to drop index: %w", err)
		}
	}

	return nil
}
