package repository

import (
	"context"
	"time"

	"github.com/abrezinsky/evote/internal/models"
)

// UserRepository defines user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByAccessCode(ctx context.Context, code string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserName(ctx context.Context, id, name string) error
	SetAccessCode(ctx context.Context, id, code string) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
}

// ElectionRepository defines election data operations
type ElectionRepository interface {
	CreateElection(ctx context.Context, e *models.Election) error
	GetElection(ctx context.Context, id string) (*models.Election, error)
	ListElections(ctx context.Context) ([]models.Election, error)
	UpdateElectionDetails(ctx context.Context, id, title, description string) error
	SetElectionStart(ctx context.Context, id string, start time.Time) error
	SetElectionEnd(ctx context.Context, id string, end time.Time) error
	SetElectionClosesAt(ctx context.Context, id string, closesAt *time.Time) error
	ListElectionsDueForClose(ctx context.Context, now time.Time) ([]models.Election, error)
	DeleteElection(ctx context.Context, id string) error
	CountElections(ctx context.Context) (int, error)
}

// CandidateRepository defines candidate data operations
type CandidateRepository interface {
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListCandidatesByElection(ctx context.Context, electionID string) ([]models.Candidate, error)
	UpdateCandidate(ctx context.Context, id, name, party string) error
	DeleteCandidate(ctx context.Context, id string) error
}

// VoteRepository defines vote data operations
type VoteRepository interface {
	CastVote(ctx context.Context, v *models.Vote) error
	ListVotesByUser(ctx context.Context, userID string) ([]models.VoteDetail, error)
	LatestVoteByUser(ctx context.Context, userID string) (*models.VoteDetail, error)
	CountVotes(ctx context.Context) (int, error)
	CountVotesByElection(ctx context.Context) ([]models.ElectionVoteCount, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	UserRepository
	ElectionRepository
	CandidateRepository
	VoteRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
