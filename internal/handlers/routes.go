package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/abrezinsky/evote/internal/auth"
)

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	if h.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(h.conditionalHTTPLogger)
	r.Use(recordMetrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   h.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Operational endpoints
	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", h.metrics)

	// WebSocket (kept outside the request timeout)
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Auth routes (public)
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)
		r.Post("/auth/voter-login", h.handleVoterLogin)
		r.Post("/auth/logout", h.handleLogout)

		// Everything else needs a session
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(h.Tokens))

			r.Get("/auth/getme", h.handleGetMe)

			// Elections
			r.Route("/elections", func(r chi.Router) {
				r.Get("/", h.handleListElections)
				r.Get("/active", h.handleListActiveElections)
				r.Get("/{id}", h.handleGetElection)
				r.With(auth.Require(auth.CapViewResults)).Get("/{id}/results", h.handleElectionResults)

				r.Group(func(r chi.Router) {
					r.Use(auth.Require(auth.CapManageElections))
					r.Post("/", h.handleCreateElection)
					r.Put("/{id}", h.handleUpdateElection)
					r.Put("/{id}/activate", h.handleActivateElection)
					r.Put("/{id}/end", h.handleEndElection)
					r.Put("/{id}/schedule-close", h.handleScheduleClose)
					r.Delete("/{id}", h.handleDeleteElection)
				})
			})

			// Candidates; GET /candidates/{id} takes an election ID
			r.Route("/candidates", func(r chi.Router) {
				r.Get("/", h.handleListCandidates)
				r.Get("/{id}", h.handleListElectionCandidates)

				r.Group(func(r chi.Router) {
					r.Use(auth.Require(auth.CapManageElections))
					r.Post("/", h.handleCreateCandidate)
					r.Put("/{id}", h.handleUpdateCandidate)
					r.Delete("/{id}", h.handleDeleteCandidate)
				})
			})

			// Votes
			r.Route("/votes", func(r chi.Router) {
				r.Use(auth.Require(auth.CapCastVote))
				r.With(h.rateLimitVotes).Post("/", h.handleCastVote)
				r.Get("/my", h.handleMyVotes)
				r.Get("/confirmation", h.handleVoteConfirmation)
			})

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.With(auth.Require(auth.CapViewMonitor)).Get("/monitor", h.handleMonitor)
				r.With(auth.Require(auth.CapViewResults)).Get("/results", h.handleResults)

				r.Group(func(r chi.Router) {
					r.Use(auth.Require(auth.CapManageUsers))
					r.Get("/", h.handleListUsers)
					r.Put("/voter/{id}", h.handleUpdateVoter)
					r.Delete("/voter/{id}", h.handleDeleteVoter)
					r.Get("/voter/{id}/qr", h.handleAccessCodeQR)
					r.Post("/generate-access-codes", h.handleGenerateAccessCodes)
					r.Get("/settings", h.handleGetSettings)
					r.Put("/settings", h.handleUpdateSettings)
				})
			})
		})
	})

	return r
}
