package services

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/abrezinsky/evote/internal/election"
	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/metrics"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// VotingServiceRepository defines the repository methods needed by VotingService
type VotingServiceRepository interface {
	repository.VoteRepository
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetElection(ctx context.Context, id string) (*models.Election, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
}

// VotingService handles vote-related business logic
type VotingService struct {
	log         logger.Logger
	repo        VotingServiceRepository
	results     ResultsServicer
	broadcaster Broadcaster
	now         func() time.Time
}

// NewVotingService creates a new VotingService
func NewVotingService(log logger.Logger, repo VotingServiceRepository, results ResultsServicer) *VotingService {
	return &VotingService{log: log, repo: repo, results: results, now: time.Now}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *VotingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetClock overrides the time source (for testing)
func (s *VotingService) SetClock(now func() time.Time) {
	s.now = now
}

// VoteReceipt is returned to the voter after a successful vote
type VoteReceipt struct {
	Receipt       string    `json:"receipt"`
	ElectionID    string    `json:"electionId"`
	ElectionTitle string    `json:"electionTitle"`
	CandidateID   string    `json:"candidateId"`
	CandidateName string    `json:"candidateName"`
	CastAt        time.Time `json:"timestamp"`
	CastAgo       string    `json:"castAgo"`
}

// VoteElection is the election summary shown next to a vote
type VoteElection struct {
	ID     string          `json:"_id"`
	Title  string          `json:"title"`
	Status election.Status `json:"status"`
}

// VoteCandidate is the candidate summary shown next to a vote
type VoteCandidate struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

// VoteView is one of a voter's votes
type VoteView struct {
	ID        string        `json:"_id"`
	Receipt   string        `json:"receipt"`
	Election  VoteElection  `json:"election"`
	Candidate VoteCandidate `json:"candidate"`
	Timestamp time.Time     `json:"timestamp"`
	CastAgo   string        `json:"castAgo"`
}

// CastVote records userID's vote for candidateID in electionID. The election
// must be active, the candidate must stand in it and the voter must not have
// voted in it yet.
func (s *VotingService) CastVote(ctx context.Context, userID, electionID, candidateID string) (*VoteReceipt, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.Unauthorized("session user no longer exists")
		}
		return nil, err
	}

	e, err := s.repo.GetElection(ctx, electionID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("election not found")
	}
	if err != nil {
		return nil, err
	}
	if e.Status() != election.Active {
		return nil, ErrElectionNotActive
	}

	c, err := s.repo.GetCandidate(ctx, candidateID)
	if err == repository.ErrNotFound {
		return nil, ErrCandidateNotInElection
	}
	if err != nil {
		return nil, err
	}
	if c.ElectionID != e.ID {
		return nil, ErrCandidateNotInElection
	}

	vote := &models.Vote{
		UserID:      userID,
		ElectionID:  e.ID,
		CandidateID: c.ID,
		CreatedAt:   s.now().UTC(),
	}
	switch err := s.repo.CastVote(ctx, vote); err {
	case nil:
	case repository.ErrDuplicate:
		return nil, ErrAlreadyVoted
	case repository.ErrNotFound:
		return nil, ErrCandidateNotInElection
	case repository.ErrStateChanged:
		return nil, ErrElectionNotActive
	default:
		return nil, err
	}

	s.log.Info("Vote recorded", "user", userID, "election", e.ID, "candidate", c.ID, "receipt", vote.Receipt)
	metrics.IncVote()
	s.broadcastResults(ctx, e.ID)

	return &VoteReceipt{
		Receipt:       vote.Receipt,
		ElectionID:    e.ID,
		ElectionTitle: e.Title,
		CandidateID:   c.ID,
		CandidateName: c.Name,
		CastAt:        vote.CreatedAt,
		CastAgo:       humanize.RelTime(vote.CreatedAt, s.now(), "ago", "from now"),
	}, nil
}

// broadcastResults pushes the election's fresh tally to connected clients
func (s *VotingService) broadcastResults(ctx context.Context, electionID string) {
	if s.broadcaster == nil || s.results == nil {
		return
	}
	result, err := s.results.ElectionResult(ctx, electionID)
	if err != nil {
		s.log.Warn("Failed to load results for broadcast", "election", electionID, "error", err)
		return
	}
	s.broadcaster.BroadcastResults(*result)
}

// MyVotes returns the user's votes, newest first
func (s *VotingService) MyVotes(ctx context.Context, userID string) ([]VoteView, error) {
	details, err := s.repo.ListVotesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]VoteView, 0, len(details))
	for _, d := range details {
		out = append(out, newVoteView(d, now))
	}
	return out, nil
}

// Confirmation returns the user's most recent vote
func (s *VotingService) Confirmation(ctx context.Context, userID string) (*VoteView, error) {
	d, err := s.repo.LatestVoteByUser(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("no vote found")
	}
	if err != nil {
		return nil, err
	}
	v := newVoteView(*d, s.now())
	return &v, nil
}

func newVoteView(d models.VoteDetail, now time.Time) VoteView {
	return VoteView{
		ID:      d.Vote.ID,
		Receipt: d.Vote.Receipt,
		Election: VoteElection{
			ID:     d.Election.ID,
			Title:  d.Election.Title,
			Status: d.Election.Status(),
		},
		Candidate: VoteCandidate{
			ID:    d.Candidate.ID,
			Name:  d.Candidate.Name,
			Party: d.Candidate.Party,
		},
		Timestamp: d.Vote.CreatedAt,
		CastAgo:   humanize.RelTime(d.Vote.CreatedAt, now, "ago", "from now"),
	}
}
