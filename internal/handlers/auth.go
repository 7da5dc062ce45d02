package handlers

import (
	"net/http"

	"github.com/abrezinsky/evote/internal/auth"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/services"
)

// handleRegister creates an account. A signed-in admin may create admins.
func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	actorRole := ""
	if token := auth.TokenFromRequest(r); token != "" {
		if claims, err := h.Tokens.Parse(token); err == nil {
			actorRole = claims.Role
		}
	}

	user, err := h.Users.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, actorRole)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, AuthResponse{Message: "Registration successful", User: user})
}

// handleLogin signs in an admin or chairman
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	h.startSession(w, user)
}

// handleVoterLogin signs in a voter by access code
func (h *Handlers) handleVoterLogin(w http.ResponseWriter, r *http.Request) {
	var req VoterLoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.Users.VoterLogin(r.Context(), req.AccessCode)
	if err != nil {
		respondError(w, err)
		return
	}
	h.startSession(w, user)
}

// startSession issues a token as both cookie and response body
func (h *Handlers) startSession(w http.ResponseWriter, user *models.User) {
	token, err := h.Tokens.Generate(user.ID, user.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	auth.SetSessionCookie(w, token, h.Tokens.TTL())
	respondOK(w, AuthResponse{Message: "Login successful", User: user, Token: token})
}

// handleLogout clears the session cookie
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}

// handleGetMe returns the signed-in user
func (h *Handlers) handleGetMe(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.Users.Me(r.Context(), p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, MeResponse{User: user})
}
