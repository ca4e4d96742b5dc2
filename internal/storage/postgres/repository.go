package postgres

import (
	"errors"

	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/domain/vote"
)

// Sentinel errors for expected business outcomes. Handlers map these to
// specific HTTP responses instead of generic failures.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateVote    = errors.New("this name has already been used to vote in this election")
	ErrDuplicateSlug    = errors.New("an election with this election_id already exists")
	ErrNoActiveElection = errors.New("no active election")
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page     int
	PageSize int
}

// PaginatedResult holds a page of data with pagination metadata
type PaginatedResult struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// ContestantRepository defines the methods for interacting with contestants
type ContestantRepository interface {
	Create(c *contestant.Contestant) error
	GetByID(id string) (*contestant.Contestant, error)
	GetAll() ([]*contestant.Contestant, error)
	Update(c *contestant.Contestant) error
	UpdatePhotoURL(id, photoURL string) error
	Delete(id string) error
	Count() (int64, error)
}

// ElectionRepository defines the methods for interacting with elections.
// Start and Reset are multi-step lifecycle transitions executed as single
// database transactions.
type ElectionRepository interface {
	Create(e *election.Election) error
	GetByID(id string) (*election.Election, error)
	GetActive() (*election.Election, error)
	GetAll() ([]*election.Election, error)
	Start(id string) (*election.Election, error)
	End(id string) (*election.Election, error)
	Reset(id string) (*election.Election, error)
	Delete(id string) error
	CountActive() (int64, error)
}

// VoteRepository defines the methods for interacting with votes. Create and
// Delete keep the contestant's denormalized vote_count in sync within the
// same transaction.
type VoteRepository interface {
	Create(v *vote.Vote) error
	GetByID(id string) (*vote.Vote, error)
	HasVoted(normalizedName, electionSlug string) (bool, error)
	GetAllPaginated(params PaginationParams) (*PaginatedResult, error)
	Delete(id string) error
	Count() (int64, error)
}

// AdminRepository defines the methods for interacting with admin credentials
type AdminRepository interface {
	Create(a *admin.Admin) error
	GetByUsername(username string) (*admin.Admin, error)
}

// RepositoryContainer bundles all repositories behind one interface
type RepositoryContainer interface {
	Contestants() ContestantRepository
	Elections() ElectionRepository
	Votes() VoteRepository
	Admins() AdminRepository
	Health() error
	Close() error
}
