package services

import (
	"context"
	"strings"
	"time"

	"github.com/abrezinsky/evote/internal/election"
	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/metrics"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// ElectionServiceRepository defines the repository methods needed by ElectionService
type ElectionServiceRepository interface {
	repository.ElectionRepository
	ListCandidatesByElection(ctx context.Context, electionID string) ([]models.Candidate, error)
}

// ElectionService handles the election lifecycle
type ElectionService struct {
	log         logger.Logger
	repo        ElectionServiceRepository
	broadcaster Broadcaster
	now         func() time.Time
}

// NewElectionService creates a new ElectionService
func NewElectionService(log logger.Logger, repo ElectionServiceRepository) *ElectionService {
	return &ElectionService{log: log, repo: repo, now: time.Now}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ElectionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetClock overrides the time source (for testing)
func (s *ElectionService) SetClock(now func() time.Time) {
	s.now = now
}

// ElectionView is an election with its derived status
type ElectionView struct {
	models.Election
	Status   election.Status `json:"status"`
	IsActive bool            `json:"isActive"`
}

// NewElectionView derives the status of e
func NewElectionView(e models.Election) ElectionView {
	status := e.Status()
	return ElectionView{Election: e, Status: status, IsActive: status == election.Active}
}

// ElectionDetail is an election with its candidates, for the ballot page
type ElectionDetail struct {
	ElectionView
	Candidates []models.Candidate `json:"candidates"`
}

// ElectionInput holds the editable fields of an election
type ElectionInput struct {
	Title       string
	Description string
}

func (s *ElectionService) load(ctx context.Context, id string) (*models.Election, error) {
	e, err := s.repo.GetElection(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("election not found")
	}
	return e, err
}

func views(elections []models.Election) []ElectionView {
	out := make([]ElectionView, 0, len(elections))
	for _, e := range elections {
		out = append(out, NewElectionView(e))
	}
	return out
}

// List returns every election with its status
func (s *ElectionService) List(ctx context.Context) ([]ElectionView, error) {
	elections, err := s.repo.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	return views(elections), nil
}

// ListActive returns the elections currently accepting votes
func (s *ElectionService) ListActive(ctx context.Context) ([]ElectionView, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := []ElectionView{}
	for _, v := range all {
		if v.Status == election.Active {
			active = append(active, v)
		}
	}
	return active, nil
}

// Get returns an election with its candidates
func (s *ElectionService) Get(ctx context.Context, id string) (*ElectionDetail, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	candidates, err := s.repo.ListCandidatesByElection(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ElectionDetail{ElectionView: NewElectionView(*e), Candidates: candidates}, nil
}

// Create adds a new election that has not started yet
func (s *ElectionService) Create(ctx context.Context, in ElectionInput, createdBy string) (*ElectionView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.Validation("title is required")
	}

	e := &models.Election{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateElection(ctx, e); err != nil {
		return nil, err
	}

	s.log.Info("Election created", "id", e.ID, "title", e.Title, "by", createdBy)
	view := NewElectionView(*e)
	return &view, nil
}

// Update changes title and description of an election that has not ended
func (s *ElectionService) Update(ctx context.Context, id string, in ElectionInput) (*ElectionView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.Validation("title is required")
	}

	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status() == election.Ended {
		return nil, ErrElectionEnded
	}

	e.Title = title
	e.Description = strings.TrimSpace(in.Description)
	if err := s.repo.UpdateElectionDetails(ctx, id, e.Title, e.Description); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFound("election not found")
		}
		return nil, err
	}

	s.log.Info("Election updated", "id", id, "title", e.Title)
	view := NewElectionView(*e)
	return &view, nil
}

// Activate starts a not-yet-started election at start, or now when start is nil
func (s *ElectionService) Activate(ctx context.Context, id string, start *time.Time) (*ElectionView, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch e.Status() {
	case election.Active:
		return nil, ErrElectionAlreadyStarted
	case election.Ended:
		return nil, ErrElectionEnded
	}

	at := s.now().UTC()
	if start != nil && !start.IsZero() {
		at = start.UTC()
	}
	if e.ClosesAt != nil && !e.ClosesAt.After(at) {
		return nil, ErrCloseTimeInPast
	}

	if err := s.repo.SetElectionStart(ctx, id, at); err != nil {
		return nil, s.transitionError(err)
	}
	e.StartTime = &at

	return s.transitioned(e), nil
}

// End closes a running election at end, or now when end is nil
func (s *ElectionService) End(ctx context.Context, id string, end *time.Time) (*ElectionView, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.end(ctx, e, end)
}

func (s *ElectionService) end(ctx context.Context, e *models.Election, end *time.Time) (*ElectionView, error) {
	if e.Status() != election.Active {
		return nil, ErrElectionNotActive
	}

	at := s.now().UTC()
	if end != nil && !end.IsZero() {
		at = end.UTC()
	}
	if at.Before(*e.StartTime) {
		return nil, ErrEndBeforeStart
	}

	if err := s.repo.SetElectionEnd(ctx, e.ID, at); err != nil {
		return nil, s.transitionError(err)
	}
	e.EndTime = &at
	e.ClosesAt = nil

	return s.transitioned(e), nil
}

// ScheduleClose sets (or with nil, cancels) the time at which a running or
// upcoming election is ended automatically.
func (s *ElectionService) ScheduleClose(ctx context.Context, id string, closesAt *time.Time) (*ElectionView, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status() == election.Ended {
		return nil, ErrElectionEnded
	}

	var at *time.Time
	if closesAt != nil && !closesAt.IsZero() {
		t := closesAt.UTC()
		if !t.After(s.now()) {
			return nil, ErrCloseTimeInPast
		}
		at = &t
	}

	if err := s.repo.SetElectionClosesAt(ctx, id, at); err != nil {
		return nil, s.transitionError(err)
	}
	e.ClosesAt = at

	if at != nil {
		s.log.Info("Election close scheduled", "id", id, "closes_at", at.Format(time.RFC3339))
	} else {
		s.log.Info("Election close cancelled", "id", id)
	}
	view := NewElectionView(*e)
	return &view, nil
}

// CloseDue ends every running election whose scheduled close time has passed.
// Returns the number of elections ended.
func (s *ElectionService) CloseDue(ctx context.Context) (int, error) {
	now := s.now().UTC()
	due, err := s.repo.ListElectionsDueForClose(ctx, now)
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range due {
		e := &due[i]
		at := *e.ClosesAt
		if at.Before(*e.StartTime) {
			at = *e.StartTime
		}
		if _, err := s.end(ctx, e, &at); err != nil {
			s.log.Warn("Failed to close election on schedule", "id", e.ID, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}

// Delete removes an election that has not ended
func (s *ElectionService) Delete(ctx context.Context, id string) error {
	e, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if e.Status() == election.Ended {
		return ErrElectionEnded
	}

	if err := s.repo.DeleteElection(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("election not found")
		}
		return err
	}
	s.log.Info("Election deleted", "id", id, "title", e.Title)
	return nil
}

func (s *ElectionService) transitionError(err error) error {
	switch err {
	case repository.ErrStateChanged:
		return ErrElectionStateChanged
	case repository.ErrNotFound:
		return errors.NotFound("election not found")
	}
	return err
}

func (s *ElectionService) transitioned(e *models.Election) *ElectionView {
	view := NewElectionView(*e)
	s.log.Info("Election status changed", "id", e.ID, "title", e.Title, "status", view.Status.String())
	metrics.IncTransition(view.Status.String())
	if s.broadcaster != nil {
		s.broadcaster.BroadcastElectionStatus(view)
	}
	return &view
}
