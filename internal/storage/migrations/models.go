package migrations

import (
	"github.com/goodnessw/election-api/internal/domain/admin"
	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/domain/vote"
)

// AllModels returns every model managed by the core-tables migration,
// in dependency order
func AllModels() []any {
	return []any{
		&admin.Admin{},
		&contestant.Contestant{},
		&election.Election{},
		&vote.Vote{},
	}
}
