package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/evote/internal/election"
	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// CandidateServiceRepository defines the repository methods needed by CandidateService
type CandidateServiceRepository interface {
	repository.CandidateRepository
	GetElection(ctx context.Context, id string) (*models.Election, error)
}

// CandidateService handles candidate-related business logic
type CandidateService struct {
	log  logger.Logger
	repo CandidateServiceRepository
}

// NewCandidateService creates a new CandidateService
func NewCandidateService(log logger.Logger, repo CandidateServiceRepository) *CandidateService {
	return &CandidateService{log: log, repo: repo}
}

// CandidateInput holds the editable fields of a candidate
type CandidateInput struct {
	ElectionID string
	Name       string
	Party      string
}

// List returns every candidate
func (s *CandidateService) List(ctx context.Context) ([]models.Candidate, error) {
	return s.repo.ListCandidates(ctx)
}

// ListByElection returns an election's candidates in the order they were added
func (s *CandidateService) ListByElection(ctx context.Context, electionID string) ([]models.Candidate, error) {
	if _, err := s.election(ctx, electionID); err != nil {
		return nil, err
	}
	return s.repo.ListCandidatesByElection(ctx, electionID)
}

// Create adds a candidate to an election that has not ended
func (s *CandidateService) Create(ctx context.Context, in CandidateInput) (*models.Candidate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	e, err := s.election(ctx, in.ElectionID)
	if err != nil {
		return nil, err
	}
	if e.Status() == election.Ended {
		return nil, ErrElectionEnded
	}

	c := &models.Candidate{ElectionID: e.ID, Name: name, Party: strings.TrimSpace(in.Party)}
	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("Candidate created", "id", c.ID, "name", c.Name, "election", e.ID)
	return c, nil
}

// Update renames a candidate whose election has not ended
func (s *CandidateService) Update(ctx context.Context, id string, in CandidateInput) (*models.Candidate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	c, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.Party = strings.TrimSpace(in.Party)
	if err := s.repo.UpdateCandidate(ctx, id, c.Name, c.Party); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFound("candidate not found")
		}
		return nil, err
	}

	s.log.Info("Candidate updated", "id", id, "name", c.Name)
	return c, nil
}

// Delete removes a candidate whose election has not ended
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	c, err := s.editable(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCandidate(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("candidate not found")
		}
		return err
	}
	s.log.Info("Candidate deleted", "id", id, "name", c.Name)
	return nil
}

func (s *CandidateService) election(ctx context.Context, id string) (*models.Election, error) {
	e, err := s.repo.GetElection(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("election not found")
	}
	return e, err
}

// editable loads a candidate and rejects changes once its election has ended
func (s *CandidateService) editable(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := s.repo.GetCandidate(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("candidate not found")
	}
	if err != nil {
		return nil, err
	}

	e, err := s.election(ctx, c.ElectionID)
	if err != nil {
		return nil, err
	}
	if e.Status() == election.Ended {
		return nil, ErrElectionEnded
	}
	return c, nil
}
