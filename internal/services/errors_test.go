package services_test

import (
	"strings"
	"testing"

	"github.com/abrezinsky/evote/internal/services"
)

func TestServiceError_Error(t *testing.T) {
	err := &services.ServiceError{Message: "test error message"}

	if result := err.Error(); result != "test error message" {
		t.Errorf("expected 'test error message', got %q", result)
	}
}

func TestInvalidRoleError_Error(t *testing.T) {
	err := &services.InvalidRoleError{Role: "king"}

	result := err.Error()
	if !strings.Contains(result, "king") || !strings.Contains(result, "invalid role") {
		t.Errorf("unexpected message %q", result)
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"ErrElectionNotActive", services.ErrElectionNotActive, "not active"},
		{"ErrElectionEnded", services.ErrElectionEnded, "ended"},
		{"ErrEndBeforeStart", services.ErrEndBeforeStart, "before"},
		{"ErrAlreadyVoted", services.ErrAlreadyVoted, "already voted"},
		{"ErrCandidateNotInElection", services.ErrCandidateNotInElection, "candidate"},
		{"ErrInvalidCredentials", services.ErrInvalidCredentials, "invalid"},
		{"ErrInvalidAccessCode", services.ErrInvalidAccessCode, "access code"},
		{"ErrBaseURLNotConfigured", services.ErrBaseURLNotConfigured, "base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("expected %q to contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
