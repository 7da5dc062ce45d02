package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/abrezinsky/evote/internal/auth"
	"github.com/abrezinsky/evote/internal/services"
	"github.com/abrezinsky/evote/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Users       services.UserServicer
	Elections   services.ElectionServicer
	Candidates  services.CandidateServicer
	Voting      services.VotingServicer
	Results     services.ResultsServicer
	Settings    services.SettingsServicer
	Tokens      *auth.Manager
	Hub         *websocket.Hub
	Log         HTTPLogger
	corsOrigins []string
	trustProxy  bool
	voteLimiter *ipRateLimiter
	metrics     http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// Options tunes the HTTP surface
type Options struct {
	CORSOrigins []string
	VoteRate    float64 // ballots per second per client IP
	VoteBurst   int
	TrustProxy  bool // mount RealIP so proxy headers set the client address
}

// New creates a new Handlers instance with all dependencies
func New(
	users services.UserServicer,
	elections services.ElectionServicer,
	candidates services.CandidateServicer,
	voting services.VotingServicer,
	results services.ResultsServicer,
	settings services.SettingsServicer,
	tokens *auth.Manager,
	hub *websocket.Hub,
	log HTTPLogger,
	opts Options,
) *Handlers {
	if opts.VoteRate <= 0 {
		opts.VoteRate = 1
	}
	if opts.VoteBurst < 1 {
		opts.VoteBurst = 5
	}
	return &Handlers{
		Users:       users,
		Elections:   elections,
		Candidates:  candidates,
		Voting:      voting,
		Results:     results,
		Settings:    settings,
		Tokens:      tokens,
		Hub:         hub,
		Log:         log,
		corsOrigins: opts.CORSOrigins,
		trustProxy:  opts.TrustProxy,
		voteLimiter: newIPRateLimiter(rate.Limit(opts.VoteRate), opts.VoteBurst, 10*time.Minute),
		metrics:     promhttp.Handler(),
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// TestTokenSecret signs the tokens of handlers built by NewForTesting
const TestTokenSecret = "test-secret"

// NewForTesting creates a Handlers instance with a known token secret, no
// websocket hub and a generous vote limit
func NewForTesting(
	users services.UserServicer,
	elections services.ElectionServicer,
	candidates services.CandidateServicer,
	voting services.VotingServicer,
	results services.ResultsServicer,
	settings services.SettingsServicer,
) *Handlers {
	return New(users, elections, candidates, voting, results, settings,
		auth.NewManager(TestTokenSecret, time.Hour), nil, NoopHTTPLogger{},
		Options{CORSOrigins: []string{"http://localhost:5173"}, VoteRate: 1000, VoteBurst: 1000})
}

// handleHealth reports liveness
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, HealthResponse{Status: "ok"})
}
