package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// migration005Up creates the vote counter functions. Counters move only
// through these functions, inside the same transaction as the vote row,
// so a failed insert never leaves a stray increment behind.
func migration005Up(db *gorm.DB) error {
	functions := []string{
		`CREATE OR REPLACE FUNCTION increment_vote_count(contestant_uuid UUID)
        RETURNS void AS $$
        BEGIN
            UPDATE contestants
            SET vote_count = vote_count + 1,
                updated_at = CURRENT_TIMESTAMP
            WHERE id = contestant_uuid;
        END;
        $$ LANGUAGE plpgsql`,
		`CREATE OR REPLACE FUNCTION decrement_vote_count(contestant_uuid UUID)
        RETURNS void AS $$
        BEGIN
            UPDATE contestants
            SET vote_count = GREATEST(vote_count - 1, 0),
                updated_at = CURRENT_TIMESTAMP
            WHERE id = contestant_uuid;
        END;
        $$ LANGUAGE plpgsql`,
	}

	for _, function := range functions {
		if err := db.Exec(function).Error; err != nil {
			return fmt.Errorf("failed to create counter function: %w", err)
		}
	}

	return nil
}

func migration005Down(db *gorm.DB) error {
	functions := []string{
		`DROP FUNCTION IF EXISTS increment_vote_count(UUID)`,
		`DROP FUNCTION IF EXISTS decrement_vote_count(UUID)`,
	}

	for _, function := range functions {
		if err := db.Exec(function).Error; err != nil {
			return fmt.Errorf("failed to drop counter function: %w", err)
		}
	}

	return nil
}
