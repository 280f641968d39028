package owner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
	"holding/internal/domain/services"
)

type settingsService struct {
	settingsRepo repositories.UserSettingsRepository
	logger       *slog.Logger
}

// NewSettingsService creates a new user settings service
func NewSettingsService(settingsRepo repositories.UserSettingsRepository, logger *slog.Logger) services.SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings retrieves the acting user's settings. A user should always
// have a settings row; if one is missing, defaults are recreated.
func (s *settingsService) GetSettings(ctx context.Context, actor *models.Owner) (*models.UserSettings, error) {
	if !actor.IsUser() {
		return nil, fmt.Errorf("only users have settings: %w", domain.ErrUnsupported)
	}

	settings, err := s.settingsRepo.Get(ctx, actor.ID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	s.logger.Warn("user has no settings row, recreating defaults", "owner_id", actor.ID)
	settings = models.DefaultUserSettings(actor.ID)
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings replaces the acting user's preference flags
func (s *settingsService) UpdateSettings(ctx context.Context, actor *models.Owner, req *services.UpdateSettingsRequest) (*models.UserSettings, error) {
	if !actor.IsUser() {
		return nil, fmt.Errorf("only users have settings: %w", domain.ErrUnsupported)
	}

	settings := &models.UserSettings{
		OwnerID:            actor.ID,
		EphemeralContainer: req.EphemeralContainer,
		EphemeralUser:      req.EphemeralUser,
		EphemeralItem:      req.EphemeralItem,
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("user settings updated", "owner_id", actor.ID)
	return settings, nil
}
