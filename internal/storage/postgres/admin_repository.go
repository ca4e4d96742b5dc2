package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/logger"
)

// PostgresAdminRepository implements AdminRepository using GORM
type PostgresAdminRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresAdminRepository creates a new PostgreSQL admin repository
func NewPostgresAdminRepository(db *gorm.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{
		db:  db,
		log: logger.Repository("admin"),
	}
}

func (r *PostgresAdminRepository) Create(a *admin.Admin) error {
	r.log.Debug("creating admin credential", "admin_id", a.ID, "username", a.Username)

	if err := a.Validate(); err != nil {
		r.log.Error("admin validation failed", "error", err, "admin_id", a.ID)
		return fmt.Errorf("admin validation failed: %w", err)
	}

	if err := r.db.Create(a).Error; err != nil {
		r.log.Error("failed to create admin", "error", err, "admin_id", a.ID)
		return fmt.Errorf("failed to create admin: %w", err)
	}

	r.log.Info("admin created successfully", "admin_id", a.ID, "username", a.Username)
	return nil
}

func (r *PostgresAdminRepository) GetByUsername(username string) (*admin.Admin, error) {
	r.log.Debug("retrieving admin by username", "username", username)

	if username == "" {
		return nil, errors.New("username cannot be empty")
	}

	var a admin.Admin
	if err := r.db.First(&a, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("admin not found", "username", username)
			return nil, ErrNotFound
		}
		r.log.Error("failed to retrieve admin", "username", username, "error", err)
		return nil, fmt.Errorf("failed to retrieve admin: %w", err)
	}

	return &a, nil
}
