package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// migration004Up adds foreign keys and check constraints
func migration004Up(db *gorm.DB) error {
	constraints := []string{
		// Deleting a contestant takes its votes with it
		`DO $$ BEGIN
            ALTER TABLE votes
                ADD CONSTRAINT fk_votes_contestant
                FOREIGN KEY (contestant_id) REFERENCES contestants(id)
                ON DELETE CASCADE;
        EXCEPTION
            WHEN duplicate_object THEN null;
        END $$`,
		`DO $$ BEGIN
            ALTER TABLE contestants
                ADD CONSTRAINT chk_contestants_vote_count
                CHECK (vote_count >= 0);
        EXCEPTION
            WHEN duplicate_object THEN null;
        END $$`,
	}

	for _, constraint := range constraints {
		if err := db.Exec(constraint).Error; err != nil {
			return fmt.Errorf("failed to add constraint: %w", err)
		}
	}

	return nil
}

func migration004Down(db *gorm.DB) error {
	constraints := []string{
		`ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_contestant`,
		`ALTER TABLE contestants DROP CONSTRAINT IF EXISTS chk_contestants_vote_count`,
	}

	for _, constraint := range constraints {
		if err := db.Exec(constraint).Error; err != nil {
			return fmt.Errorf("failed to drop constraint: %w", err)
		}
	}

	return nil
}
