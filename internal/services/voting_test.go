package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
	"github.com/abrezinsky/evote/internal/repository/mock"
	"github.com/abrezinsky/evote/internal/services"
	"github.com/abrezinsky/evote/internal/testutil"
)

// setupVotingService creates a VotingService with all dependencies for testing
func setupVotingService(t *testing.T) (*services.VotingService, *recordingBroadcaster, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()
	resultsSvc := services.NewResultsService(log, repo)
	votingSvc := services.NewVotingService(log, repo, resultsSvc)
	b := &recordingBroadcaster{}
	votingSvc.SetBroadcaster(b)
	return votingSvc, b, repo
}

func TestCastVote_Success(t *testing.T) {
	svc, b, repo := setupVotingService(t)
	ctx := context.Background()
	e, cands := testutil.SeedElection(t, repo, "Board", true, "Alice", "Bob")
	voter := testutil.SeedVoter(t, repo, "ada", "AB-CDE")

	receipt, err := svc.CastVote(ctx, voter.ID, e.ID, cands[1].ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if receipt.Receipt == "" {
		t.Error("expected a receipt id")
	}
	if receipt.CandidateName != "Bob" || receipt.ElectionTitle != "Board" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if receipt.CastAgo != "now" {
		t.Errorf("expected castAgo 'now', got %q", receipt.CastAgo)
	}

	bob, _ := repo.GetCandidate(ctx, cands[1].ID)
	if bob.Votes != 1 {
		t.Errorf("expected Bob to have 1 vote, got %d", bob.Votes)
	}

	if len(b.results) != 1 {
		t.Fatalf("expected 1 results broadcast, got %d", len(b.results))
	}
	if b.results[0].Candidates[0].Name != "Bob" {
		t.Errorf("expected Bob to lead the broadcast tally, got %+v", b.results[0].Candidates)
	}
	if b.results[0].Winner != nil {
		t.Error("expected no winner while the election is active")
	}
}

func TestCastVote_AlreadyVoted(t *testing.T) {
	svc, _, repo := setupVotingService(t)
	ctx := context.Background()
	e, cands := testutil.SeedElection(t, repo, "Board", true, "Alice", "Bob")
	voter := testutil.SeedVoter(t, repo, "ada", "AB-CDE")

	if _, err := svc.CastVote(ctx, voter.ID, e.ID, cands[0].ID); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := svc.CastVote(ctx, voter.ID, e.ID, cands[1].ID); err != services.ErrAlreadyVoted {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	bob, _ := repo.GetCandidate(ctx, cands[1].ID)
	if bob.Votes != 0 {
		t.Errorf("rejected vote must not be counted, got %d", bob.Votes)
	}
}

func TestCastVote_Rejections(t *testing.T) {
	svc, _, repo := setupVotingService(t)
	ctx := context.Background()
	active, activeCands := testutil.SeedElection(t, repo, "Active", true, "Alice")
	pending, pendingCands := testutil.SeedElection(t, repo, "Pending", false, "Zed")
	ended, endedCands := testutil.SeedElection(t, repo, "Ended", true, "Yan")
	if err := repo.SetElectionEnd(ctx, ended.ID, time.Now()); err != nil {
		t.Fatalf("SetElectionEnd failed: %v", err)
	}
	voter := testutil.SeedVoter(t, repo, "ada", "AB-CDE")

	tests := []struct {
		name        string
		userID      string
		electionID  string
		candidateID string
		check       func(error) bool
	}{
		{"not started", voter.ID, pending.ID, pendingCands[0].ID, func(err error) bool { return err == services.ErrElectionNotActive }},
		{"ended", voter.ID, ended.ID, endedCands[0].ID, func(err error) bool { return err == services.ErrElectionNotActive }},
		{"candidate from other election", voter.ID, active.ID, pendingCands[0].ID, func(err error) bool { return err == services.ErrCandidateNotInElection }},
		{"unknown candidate", voter.ID, active.ID, "missing", func(err error) bool { return err == services.ErrCandidateNotInElection }},
		{"unknown election", voter.ID, "missing", activeCands[0].ID, func(err error) bool { return apperrors.Is(err, apperrors.ErrNotFound) }},
		{"deleted voter", "ghost", active.ID, activeCands[0].ID, func(err error) bool { return apperrors.Is(err, apperrors.ErrUnauthorized) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CastVote(ctx, tt.userID, tt.electionID, tt.candidateID)
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if n, _ := repo.CountVotes(ctx); n != 0 {
		t.Errorf("expected no votes recorded, got %d", n)
	}
}

// endingRepository ends the election while the vote is being validated
type endingRepository struct {
	*repository.Repository
	electionID string
}

func (r *endingRepository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	if err := r.SetElectionEnd(ctx, r.electionID, time.Now()); err != nil {
		return nil, err
	}
	return r.Repository.GetCandidate(ctx, id)
}

func TestCastVote_ElectionEndsMidVote(t *testing.T) {
	realRepo := testutil.NewTestRepository(t)
	e, cands := testutil.SeedElection(t, realRepo, "Board", true, "Alice", "Bob")
	voter := testutil.SeedVoter(t, realRepo, "ada", "AB-CDE")

	log := logger.New()
	repo := &endingRepository{Repository: realRepo, electionID: e.ID}
	svc := services.NewVotingService(log, repo, services.NewResultsService(log, realRepo))

	if _, err := svc.CastVote(context.Background(), voter.ID, e.ID, cands[1].ID); err != services.ErrElectionNotActive {
		t.Fatalf("expected ErrElectionNotActive, got %v", err)
	}

	result, err := services.NewResultsService(log, realRepo).ElectionResult(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("ElectionResult failed: %v", err)
	}
	if result.TotalVotes != 0 {
		t.Errorf("vote counted after the election ended: %+v", result)
	}
	if bob, _ := realRepo.GetCandidate(context.Background(), cands[1].ID); bob.Votes != 0 {
		t.Errorf("expected Bob to have no votes, got %d", bob.Votes)
	}
}

func TestCastVote_RepositoryError(t *testing.T) {
	realRepo := testutil.NewTestRepository(t)
	repo := mock.NewRepository(realRepo)
	repo.CastVoteError = errors.New("disk full")
	svc := services.NewVotingService(logger.New(), repo, nil)

	e, cands := testutil.SeedElection(t, realRepo, "Board", true, "Alice")
	voter := testutil.SeedVoter(t, realRepo, "ada", "AB-CDE")

	if _, err := svc.CastVote(context.Background(), voter.ID, e.ID, cands[0].ID); err == nil || err.Error() != "disk full" {
		t.Errorf("expected raw repository error, got %v", err)
	}
}

func TestMyVotesAndConfirmation(t *testing.T) {
	svc, _, repo := setupVotingService(t)
	ctx := context.Background()
	first, firstCands := testutil.SeedElection(t, repo, "First", true, "Alice")
	second, secondCands := testutil.SeedElection(t, repo, "Second", true, "Bob")
	voter := testutil.SeedVoter(t, repo, "ada", "AB-CDE")

	if _, err := svc.Confirmation(ctx, voter.ID); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found before voting, got %v", err)
	}

	svc.SetClock(func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) })
	if _, err := svc.CastVote(ctx, voter.ID, first.ID, firstCands[0].ID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	svc.SetClock(func() time.Time { return time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC) })
	if _, err := svc.CastVote(ctx, voter.ID, second.ID, secondCands[0].ID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	votes, err := svc.MyVotes(ctx, voter.ID)
	if err != nil {
		t.Fatalf("MyVotes failed: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("expected 2 votes, got %d", len(votes))
	}
	if votes[0].Election.Title != "Second" || votes[1].Election.Title != "First" {
		t.Errorf("expected newest first, got %s then %s", votes[0].Election.Title, votes[1].Election.Title)
	}
	if votes[1].CastAgo != "1 hour ago" {
		t.Errorf("expected '1 hour ago', got %q", votes[1].CastAgo)
	}

	conf, err := svc.Confirmation(ctx, voter.ID)
	if err != nil {
		t.Fatalf("Confirmation failed: %v", err)
	}
	if conf.Candidate.Name != "Bob" || conf.Election.Title != "Second" {
		t.Errorf("unexpected confirmation: %+v", conf)
	}
}

func TestMyVotes_RepositoryError(t *testing.T) {
	repo := mock.NewRepository(testutil.NewTestRepository(t))
	repo.ListVotesByUserError = errors.New("db down")
	svc := services.NewVotingService(logger.New(), repo, nil)

	if _, err := svc.MyVotes(context.Background(), "u"); err == nil {
		t.Error("expected error, got nil")
	}
}
