package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

// NoMargin is reported when a winning margin cannot be computed
const NoMargin = "N/A"

// ContestantResult is one row of the report, ranked by vote count
type ContestantResult struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PhotoURL   string  `json:"photo_url,omitempty"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

// ReportSummary aggregates the standings across all contestants
type ReportSummary struct {
	Election         *election.Election `json:"election,omitempty"`
	TotalVotes       int                `json:"total_votes"`
	BallotCount      int64              `json:"ballot_count"`
	TotalContestants int                `json:"total_contestants"`
	ActiveElections  int64              `json:"active_elections"`
	Leader           string             `json:"leader,omitempty"`
	Results          []ContestantResult `json:"results"`
	WinningMargin    string             `json:"winning_margin"`
}

// ReportsService builds aggregated voting reports
type ReportsService struct {
	contestantRepo postgres.ContestantRepository
	electionRepo   postgres.ElectionRepository
	voteRepo       postgres.VoteRepository
}

// NewReportsService creates a reports service
func NewReportsService(
	contestantRepo postgres.ContestantRepository,
	electionRepo postgres.ElectionRepository,
	voteRepo postgres.VoteRepository,
) *ReportsService {
	return &ReportsService{
		contestantRepo: contestantRepo,
		electionRepo:   electionRepo,
		voteRepo:       voteRepo,
	}
}

// Summary reads contestants, the active election, the ballot count and
// the active-election count concurrently and computes the standings.
// Percentages are zero when no votes exist, never a division by zero.
func (s *ReportsService) Summary() (*ReportSummary, error) {
	var (
		contestants []*contestant.Contestant
		active      *election.Election
		ballots     int64
		activeCount int64
	)

	var g errgroup.Group

	g.Go(func() error {
		var err error
		contestants, err = s.contestantRepo.GetAll()
		if err != nil {
			return fmt.Errorf("failed to load contestants: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		active, err = s.electionRepo.GetActive()
		if errors.Is(err, postgres.ErrNoActiveElection) {
			// A report without a running election is still a report
			active = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to resolve active election: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		ballots, err = s.voteRepo.Count()
		if err != nil {
			return fmt.Errorf("failed to count ballots: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		activeCount, err = s.electionRepo.CountActive()
		if err != nil {
			return fmt.Errorf("failed to count active elections: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := buildSummary(active, contestants, ballots)
	summary.ActiveElections = activeCount
	return summary, nil
}

// buildSummary computes percentages and the winning margin from the
// already-loaded data
func buildSummary(active *election.Election, contestants []*contestant.Contestant, ballots int64) *ReportSummary {
	total := 0
	for _, c := range contestants {
		total += c.VoteCount
	}

	results := make([]ContestantResult, 0, len(contestants))
	for _, c := range contestants {
		percentage := 0.0
		if total > 0 {
			percentage = roundOneDecimal(float64(c.VoteCount) / float64(total) * 100)
		}
		results = append(results, ContestantResult{
			ID:         c.ID.String(),
			Name:       c.Name,
			PhotoURL:   c.PhotoURL,
			VoteCount:  c.VoteCount,
			Percentage: percentage,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})

	leader := ""
	if len(results) > 0 && total > 0 {
		leader = results[0].Name
	}

	return &ReportSummary{
		Election:         active,
		TotalVotes:       total,
		BallotCount:      ballots,
		TotalContestants: len(contestants),
		Leader:           leader,
		Results:          results,
		WinningMargin:    winningMargin(results, total),
	}
}

// winningMargin is the gap in percentage points between the leader and
// the runner-up. With fewer than two contestants there is no meaningful
// margin; with contestants but no votes the gap is simply zero.
func winningMargin(results []ContestantResult, total int) string {
	if len(results) < 2 {
		return NoMargin
	}
	if total == 0 {
		return "0.0"
	}

	leader := float64(results[0].VoteCount) / float64(total) * 100
	runnerUp := float64(results[1].VoteCount) / float64(total) * 100
	return fmt.Sprintf("%.1f", roundOneDecimal(leader-runnerUp))
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
