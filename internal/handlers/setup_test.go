package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrezinsky/evote/internal/handlers"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
	"github.com/abrezinsky/evote/internal/services"
	"github.com/abrezinsky/evote/internal/testutil"
)

// testSetup creates all the dependencies needed for testing handlers
type testSetup struct {
	repo     repository.FullRepository
	handlers *handlers.Handlers
	router   chi.Router
	users    *services.UserService

	admin, chairman, voter             *models.User
	adminToken, chairToken, voterToken string
}

// newTestSetup creates a new test setup with in-memory repository
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()
	return newTestSetupWithRepo(t, testutil.NewTestRepository(t))
}

// newTestSetupWithRepo wires services over repo, which may be a mock
func newTestSetupWithRepo(t *testing.T, repo repository.FullRepository) *testSetup {
	t.Helper()
	log := logger.New()

	settingsService := services.NewSettingsService(log, repo)
	userService := services.NewUserService(log, repo, settingsService)
	userService.SetHashCost(bcrypt.MinCost)
	electionService := services.NewElectionService(log, repo)
	candidateService := services.NewCandidateService(log, repo)
	resultsService := services.NewResultsService(log, repo)
	votingService := services.NewVotingService(log, repo, resultsService)

	h := handlers.NewForTesting(
		userService,
		electionService,
		candidateService,
		votingService,
		resultsService,
		settingsService,
	)

	s := &testSetup{
		repo:     repo,
		handlers: h,
		router:   h.Router(),
		users:    userService,
	}

	ctx := context.Background()
	var err error
	s.admin, err = userService.Register(ctx, services.RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "secret-admin", Role: models.RoleAdmin}, models.RoleAdmin)
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	s.chairman, err = userService.Register(ctx, services.RegisterInput{Name: "Chair", Email: "chair@example.com", Password: "secret-chair", Role: models.RoleChairman}, "")
	if err != nil {
		t.Fatalf("register chairman: %v", err)
	}
	s.voter = testutil.SeedVoter(t, repo, "ada", "AB-CDE")

	s.adminToken = s.token(t, s.admin)
	s.chairToken = s.token(t, s.chairman)
	s.voterToken = s.token(t, s.voter)
	return s
}

func (s *testSetup) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := s.handlers.Tokens.Generate(u.ID, u.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// do sends a request through the router; body is JSON-encoded unless it is a string
func (s *testSetup) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// errorBody is the JSON shape of an APIError
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	var body errorBody
	decode(t, rec, &body)
	if body.Code != code {
		t.Errorf("expected code %s, got %s (%s)", code, body.Code, body.Error)
	}
}
