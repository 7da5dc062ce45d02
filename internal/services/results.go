package services

import (
	"context"

	"github.com/abrezinsky/evote/internal/election"
	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// ResultsServiceRepository defines the repository methods needed by ResultsService
type ResultsServiceRepository interface {
	GetElection(ctx context.Context, id string) (*models.Election, error)
	ListElections(ctx context.Context) ([]models.Election, error)
	CountElections(ctx context.Context) (int, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListCandidatesByElection(ctx context.Context, electionID string) ([]models.Candidate, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
	CountVotes(ctx context.Context) (int, error)
	CountVotesByElection(ctx context.Context) ([]models.ElectionVoteCount, error)
}

// ResultsService handles results and statistics business logic
type ResultsService struct {
	log  logger.Logger
	repo ResultsServiceRepository
}

// NewResultsService creates a new ResultsService
func NewResultsService(log logger.Logger, repo ResultsServiceRepository) *ResultsService {
	return &ResultsService{log: log, repo: repo}
}

// ElectionResult is an election with its candidates ranked by votes
type ElectionResult struct {
	ElectionView
	Candidates []election.Candidate `json:"candidates"`
	Winner     *election.Candidate  `json:"winner"`
	Ties       []election.Candidate `json:"ties,omitempty"`
	TotalVotes int                  `json:"totalVotes"`
}

// MonitorStats is the admin overview of the system
type MonitorStats struct {
	TotalUsers      int                        `json:"totalUsers"`
	TotalElections  int                        `json:"totalElections"`
	TotalVotes      int                        `json:"totalVotes"`
	VotesByElection []models.ElectionVoteCount `json:"votesByElection"`
	Users           []models.User              `json:"users"`
}

// NewElectionResult ranks the candidates of e. A winner is only named once
// the election has ended.
func NewElectionResult(e models.Election, candidates []models.Candidate) ElectionResult {
	view := NewElectionView(e)

	ranked := make([]election.Candidate, 0, len(candidates))
	total := 0
	for _, c := range candidates {
		ranked = append(ranked, c.Ranked())
		total += c.Votes
	}

	r := election.Rank(ranked, view.Status)
	result := ElectionResult{
		ElectionView: view,
		Candidates:   r.Candidates,
		Ties:         election.Ties(r),
		TotalVotes:   total,
	}
	if r.Winner.IsSome() {
		w := r.Winner.Unwrap()
		result.Winner = &w
	}
	return result
}

// Results ranks every election
func (s *ResultsService) Results(ctx context.Context) ([]ElectionResult, error) {
	elections, err := s.repo.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	byElection := make(map[string][]models.Candidate, len(elections))
	for _, c := range candidates {
		byElection[c.ElectionID] = append(byElection[c.ElectionID], c)
	}

	results := make([]ElectionResult, 0, len(elections))
	for _, e := range elections {
		results = append(results, NewElectionResult(e, byElection[e.ID]))
	}
	return results, nil
}

// ElectionResult ranks a single election
func (s *ResultsService) ElectionResult(ctx context.Context, id string) (*ElectionResult, error) {
	e, err := s.repo.GetElection(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("election not found")
	}
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListCandidatesByElection(ctx, id)
	if err != nil {
		return nil, err
	}

	result := NewElectionResult(*e, candidates)
	return &result, nil
}

// Monitor returns system totals, every user with their voting flag and the
// number of votes per election
func (s *ResultsService) Monitor(ctx context.Context) (*MonitorStats, error) {
	var stats MonitorStats
	var err error

	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalElections, err = s.repo.CountElections(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVotes, err = s.repo.CountVotes(ctx); err != nil {
		return nil, err
	}
	if stats.VotesByElection, err = s.repo.CountVotesByElection(ctx); err != nil {
		return nil, err
	}
	if stats.Users, err = s.repo.ListUsers(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
