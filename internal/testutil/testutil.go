package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// SeedElection creates an election with the given candidate names. When started
// is true the election is activated an hour ago.
func SeedElection(t *testing.T, repo repository.FullRepository, title string, started bool, candidates ...string) (*models.Election, []models.Candidate) {
	t.Helper()
	ctx := context.Background()

	e := &models.Election{Title: title, Description: title + " description"}
	if err := repo.CreateElection(ctx, e); err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}
	if started {
		start := time.Now().Add(-time.Hour)
		if err := repo.SetElectionStart(ctx, e.ID, start); err != nil {
			t.Fatalf("SetElectionStart failed: %v", err)
		}
		e.StartTime = &start
	}

	var created []models.Candidate
	for _, name := range candidates {
		c := &models.Candidate{ElectionID: e.ID, Name: name, Party: name + " Party"}
		if err := repo.CreateCandidate(ctx, c); err != nil {
			t.Fatalf("CreateCandidate failed: %v", err)
		}
		created = append(created, *c)
	}
	return e, created
}

// SeedVoter creates a voter with the given access code
func SeedVoter(t *testing.T, repo repository.FullRepository, name, accessCode string) *models.User {
	t.Helper()

	u := &models.User{Name: name, Email: name + "@example.com", Role: models.RoleVoter, AccessCode: accessCode}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}
