package handlers

import (
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/services"
)

// AuthResponse is returned by the login and registration endpoints
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// MeResponse wraps the current user
type MeResponse struct {
	User *models.User `json:"user"`
}

// VoteResponse is returned after a ballot is accepted
type VoteResponse struct {
	Message string                `json:"message"`
	Vote    *services.VoteReceipt `json:"vote"`
}

// AccessCodesResponse lists the access codes that were issued
type AccessCodesResponse struct {
	Message string                          `json:"message"`
	Codes   []services.AccessCodeAssignment `json:"codes"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL string `json:"base_url"`
}
