package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// migration001Up creates required PostgreSQL extensions and custom types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.Exec(`
        DO $$ BEGIN
            CREATE TYPE election_status AS ENUM ('inactive', 'active', 'ended');
        EXCEPTION
            WHEN duplicate_object THEN null;
        END $$
    `).Error
	if err != nil {
		return fmt.Errorf("failed to create election_status type: %w", err)
	}

	return nil
}

func migration001Down(db *gorm.DB) error {
	if err := db.Exec(`DROP TYPE IF EXISTS election_status`).Error; err != nil {
		return fmt.Errorf("failed to drop election_status type: %w", err)
	}
	return nil
}
