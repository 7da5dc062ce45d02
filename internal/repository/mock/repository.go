package mock

import (
	"context"
	"time"

	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.CastVoteError = errors.New("database error")
//	svc := services.NewVotingService(log, mockRepo, nil)
//	_, err := svc.CastVote(ctx, voterID, electionID, candidateID)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== User Errors =====
	CreateUserError          error
	GetUserError             error
	GetUserByEmailError      error
	GetUserByAccessCodeError error
	ListUsersError           error
	SetAccessCodeError       error
	DeleteUserError          error
	CountUsersError          error

	// ===== Election Errors =====
	CreateElectionError           error
	GetElectionError              error
	ListElectionsError            error
	SetElectionStartError         error
	SetElectionEndError           error
	ListElectionsDueForCloseError error
	DeleteElectionError           error

	// ===== Candidate Errors =====
	CreateCandidateError          error
	ListCandidatesByElectionError error

	// ===== Vote Errors =====
	CastVoteError             error
	ListVotesByUserError      error
	CountVotesError           error
	CountVotesByElectionError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== User Methods =====

func (m *Repository) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	return m.FullRepository.CreateUser(ctx, u)
}

func (m *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	return m.FullRepository.GetUser(ctx, id)
}

func (m *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}
	return m.FullRepository.GetUserByEmail(ctx, email)
}

func (m *Repository) GetUserByAccessCode(ctx context.Context, code string) (*models.User, error) {
	if m.GetUserByAccessCodeError != nil {
		return nil, m.GetUserByAccessCodeError
	}
	return m.FullRepository.GetUserByAccessCode(ctx, code)
}

func (m *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	return m.FullRepository.ListUsers(ctx)
}

func (m *Repository) SetAccessCode(ctx context.Context, id, code string) error {
	if m.SetAccessCodeError != nil {
		return m.SetAccessCodeError
	}
	return m.FullRepository.SetAccessCode(ctx, id, code)
}

func (m *Repository) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserError != nil {
		return m.DeleteUserError
	}
	return m.FullRepository.DeleteUser(ctx, id)
}

func (m *Repository) CountUsers(ctx context.Context) (int, error) {
	if m.CountUsersError != nil {
		return 0, m.CountUsersError
	}
	return m.FullRepository.CountUsers(ctx)
}

// ===== Election Methods =====

func (m *Repository) CreateElection(ctx context.Context, e *models.Election) error {
	if m.CreateElectionError != nil {
		return m.CreateElectionError
	}
	return m.FullRepository.CreateElection(ctx, e)
}

func (m *Repository) GetElection(ctx context.Context, id string) (*models.Election, error) {
	if m.GetElectionError != nil {
		return nil, m.GetElectionError
	}
	return m.FullRepository.GetElection(ctx, id)
}

func (m *Repository) ListElections(ctx context.Context) ([]models.Election, error) {
	if m.ListElectionsError != nil {
		return nil, m.ListElectionsError
	}
	return m.FullRepository.ListElections(ctx)
}

func (m *Repository) SetElectionStart(ctx context.Context, id string, start time.Time) error {
	if m.SetElectionStartError != nil {
		return m.SetElectionStartError
	}
	return m.FullRepository.SetElectionStart(ctx, id, start)
}

func (m *Repository) SetElectionEnd(ctx context.Context, id string, end time.Time) error {
	if m.SetElectionEndError != nil {
		return m.SetElectionEndError
	}
	return m.FullRepository.SetElectionEnd(ctx, id, end)
}

func (m *Repository) ListElectionsDueForClose(ctx context.Context, now time.Time) ([]models.Election, error) {
	if m.ListElectionsDueForCloseError != nil {
		return nil, m.ListElectionsDueForCloseError
	}
	return m.FullRepository.ListElectionsDueForClose(ctx, now)
}

func (m *Repository) DeleteElection(ctx context.Context, id string) error {
	if m.DeleteElectionError != nil {
		return m.DeleteElectionError
	}
	return m.FullRepository.DeleteElection(ctx, id)
}

// ===== Candidate Methods =====

func (m *Repository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if m.CreateCandidateError != nil {
		return m.CreateCandidateError
	}
	return m.FullRepository.CreateCandidate(ctx, c)
}

func (m *Repository) ListCandidatesByElection(ctx context.Context, electionID string) ([]models.Candidate, error) {
	if m.ListCandidatesByElectionError != nil {
		return nil, m.ListCandidatesByElectionError
	}
	return m.FullRepository.ListCandidatesByElection(ctx, electionID)
}

// ===== Vote Methods =====

func (m *Repository) CastVote(ctx context.Context, v *models.Vote) error {
	if m.CastVoteError != nil {
		return m.CastVoteError
	}
	return m.FullRepository.CastVote(ctx, v)
}

func (m *Repository) ListVotesByUser(ctx context.Context, userID string) ([]models.VoteDetail, error) {
	if m.ListVotesByUserError != nil {
		return nil, m.ListVotesByUserError
	}
	return m.FullRepository.ListVotesByUser(ctx, userID)
}

func (m *Repository) CountVotes(ctx context.Context) (int, error) {
	if m.CountVotesError != nil {
		return 0, m.CountVotesError
	}
	return m.FullRepository.CountVotes(ctx)
}

func (m *Repository) CountVotesByElection(ctx context.Context) ([]models.ElectionVoteCount, error) {
	if m.CountVotesByElectionError != nil {
		return nil, m.CountVotesByElectionError
	}
	return m.FullRepository.CountVotesByElection(ctx)
}
