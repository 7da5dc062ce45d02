package services

import (
	"context"
	"time"

	"github.com/abrezinsky/evote/internal/models"
)

// UserServicer defines the interface for account operations
type UserServicer interface {
	Register(ctx context.Context, in RegisterInput, actorRole string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	VoterLogin(ctx context.Context, accessCode string) (*models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateVoter(ctx context.Context, id, name string) (*models.User, error)
	DeleteVoter(ctx context.Context, id string) error
	GenerateAccessCodes(ctx context.Context, voterIDs []string) ([]AccessCodeAssignment, error)
	AccessCodeQR(ctx context.Context, voterID string) ([]byte, error)
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// ElectionServicer defines the interface for election lifecycle operations
type ElectionServicer interface {
	List(ctx context.Context) ([]ElectionView, error)
	ListActive(ctx context.Context) ([]ElectionView, error)
	Get(ctx context.Context, id string) (*ElectionDetail, error)
	Create(ctx context.Context, in ElectionInput, createdBy string) (*ElectionView, error)
	Update(ctx context.Context, id string, in ElectionInput) (*ElectionView, error)
	Activate(ctx context.Context, id string, start *time.Time) (*ElectionView, error)
	End(ctx context.Context, id string, end *time.Time) (*ElectionView, error)
	ScheduleClose(ctx context.Context, id string, closesAt *time.Time) (*ElectionView, error)
	CloseDue(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	SetBroadcaster(b Broadcaster)
}

// CandidateServicer defines the interface for candidate operations
type CandidateServicer interface {
	List(ctx context.Context) ([]models.Candidate, error)
	ListByElection(ctx context.Context, electionID string) ([]models.Candidate, error)
	Create(ctx context.Context, in CandidateInput) (*models.Candidate, error)
	Update(ctx context.Context, id string, in CandidateInput) (*models.Candidate, error)
	Delete(ctx context.Context, id string) error
}

// VotingServicer defines the interface for casting and reviewing votes
type VotingServicer interface {
	CastVote(ctx context.Context, userID, electionID, candidateID string) (*VoteReceipt, error)
	MyVotes(ctx context.Context, userID string) ([]VoteView, error)
	Confirmation(ctx context.Context, userID string) (*VoteView, error)
	SetBroadcaster(b Broadcaster)
}

// ResultsServicer defines the interface for results operations
type ResultsServicer interface {
	Results(ctx context.Context) ([]ElectionResult, error)
	ElectionResult(ctx context.Context, id string) (*ElectionResult, error)
	Monitor(ctx context.Context) (*MonitorStats, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	EnsureBaseURL(ctx context.Context, detected string) (string, error)
}

// Broadcaster pushes election updates to connected clients
type Broadcaster interface {
	BroadcastElectionStatus(view ElectionView)
	BroadcastResults(result ElectionResult)
}

// Ensure concrete types implement interfaces
var (
	_ UserServicer      = (*UserService)(nil)
	_ ElectionServicer  = (*ElectionService)(nil)
	_ CandidateServicer = (*CandidateService)(nil)
	_ VotingServicer    = (*VotingService)(nil)
	_ ResultsServicer   = (*ResultsService)(nil)
	_ SettingsServicer  = (*SettingsService)(nil)
)
