package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/goodnessw/election-api/internal/config"
	"github.com/goodnessw/election-api/internal/logger"
)

// Container implements RepositoryContainer
type Container struct {
	db             *gorm.DB
	log            *log.Logger
	contestantRepo ContestantRepository
	electionRepo   ElectionRepository
	voteRepo       VoteRepository
	adminRepo      AdminRepository
}

// NewContainer creates a new repository container with all repositories initialized
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:             db,
		log:            logger.Repository("postgres_container"),
		contestantRepo: NewPostgresContestantRepository(db),
		electionRepo:   NewPostgresElectionRepository(db),
		voteRepo:       NewPostgresVoteRepository(db),
		adminRepo:      NewPostgresAdminRepository(db),
	}
}

// Contestants returns the contestant repository
func (c *Container) Contestants() ContestantRepository {
	return c.contestantRepo
}

// Elections returns the election repository
func (c *Container) Elections() ElectionRepository {
	return c.electionRepo
}

// Votes returns the vote repository
func (c *Container) Votes() VoteRepository {
	return c.voteRepo
}

// Admins returns the admin repository
func (c *Container) Admins() AdminRepository {
	return c.adminRepo
}

// Health checks the underlying database connection
func (c *Container) Health() error {
	return HealthCheck(c.db)
}

// Close closes the underlying database connection
func (c *Container) Close() error {
	return Close()
}

// DB exposes the underlying connection for integration tests
func (c *Container) DB() *gorm.DB {
	return c.db
}
