package services

import (
	"context"
	"strings"

	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/repository"
)

const settingBaseURL = "base_url"

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the public base URL used in access code links
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, settingBaseURL)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil // No default - setting not yet configured
		}
		return "", err // Propagate database errors
	}
	return value, nil
}

// SetBaseURL saves the public base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, settingBaseURL, strings.TrimSuffix(url, "/"))
}

// EnsureBaseURL stores detected as the base URL when none is configured or
// the stored one points at localhost (useless for QR codes scanned by phones).
// Returns the base URL in effect.
func (s *SettingsService) EnsureBaseURL(ctx context.Context, detected string) (string, error) {
	existing, err := s.GetBaseURL(ctx)
	if err != nil {
		return "", err
	}

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if !needsUpdate || detected == "" {
		return existing, nil
	}

	if err := s.SetBaseURL(ctx, detected); err != nil {
		return existing, err
	}
	s.log.Info("Default base URL set", "url", detected)
	return strings.TrimSuffix(detected, "/"), nil
}
