package migrations

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/logger"
)

// migration006Up seeds the initial admin credential. Username and
// password come from ADMIN_USERNAME / ADMIN_PASSWORD so deployments
// never ship a hardcoded secret; when unset, seeding is skipped and
// the admin must be created out of band.
func migration006Up(db *gorm.DB) error {
	log := logger.Migration()

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&admin.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing admin: %w", err)
	}
	if count > 0 {
		log.Debug("admin already seeded", "username", username)
		return nil
	}

	seed, err := admin.NewAdmin(username, password)
	if err != nil {
		return fmt.Errorf("failed to build admin seed: %w", err)
	}

	if err := db.Create(seed).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info("seeded initial admin", "username", username)
	return nil
}

func migration006Down(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		return nil
	}
	if err := db.Where("username = ?", username).Delete(&admin.Admin{}).Error; err != nil {
		return fmt.Errorf("failed to remove seeded admin: %w", err)
	}
	return nil
}
