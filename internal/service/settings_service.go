package service

import (
	"context"
	"fmt"
	"time"

	"cafe-site/internal/model"
	"cafe-site/internal/repository"

	"github.com/rs/zerolog"
)

// settingsService implements SettingsService.
type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger.With().Str("service", "settings").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (*model.SiteSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get site settings")
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	if settings == nil {
		defaults := model.DefaultSiteSettings()
		return &defaults, nil
	}
	if settings.OpeningHours == nil {
		settings.OpeningHours = []model.OpeningHours{}
	}
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context, settings *model.SiteSettings) (*model.SiteSettings, error) {
	if settings == nil {
		return nil, model.ValidationError("request body is required")
	}
	if err := model.Validate(settings); err != nil {
		return nil, err
	}

	if settings.OpeningHours == nil {
		settings.OpeningHours = []model.OpeningHours{}
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save site settings: %w", err)
	}

	s.logger.Info().Str("cafe_name", settings.CafeName).Msg("site settings saved")
	return settings, nil
}
