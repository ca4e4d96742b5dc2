package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// migration002Up creates the core tables from the domain models
func migration002Up(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to create core tables: %w", err)
	}
	return nil
}

func migration002Down(db *gorm.DB) error {
	// Reverse dependency order: votes reference contestants and elections
	for _, table := range []string{"votes", "elections", "contestants", "admins"} {
		if err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
