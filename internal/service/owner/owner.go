package owner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"holding/internal/config"
	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
	"holding/internal/domain/services"
)

type ownerService struct {
	ownerRepo    repositories.OwnerRepository
	settingsRepo repositories.UserSettingsRepository
	logger       *slog.Logger
}

// NewOwnerService creates a new owner service
func NewOwnerService(
	ownerRepo repositories.OwnerRepository,
	settingsRepo repositories.UserSettingsRepository,
	logger *slog.Logger,
) services.OwnerService {
	return &ownerService{
		ownerRepo:    ownerRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// ProvisionUser finds or creates the user owner for an external identity,
// refreshing its profile fields. New users get default settings.
func (s *ownerService) ProvisionUser(ctx context.Context, req *services.ProvisionUserRequest) (*models.Owner, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ExternalID, validation.Required),
		validation.Field(&req.UserName, validation.Required, validation.Length(1, config.MaxOwnerNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.ownerRepo.GetByExternalID(ctx, req.ExternalID)
	if err == nil {
		if existing.Type != models.OwnerTypeUser {
			return nil, fmt.Errorf("owner %d is not a user: %w", req.ExternalID, domain.ErrConflict)
		}
		if existing.UserName != req.UserName || existing.UserTag != req.UserTag || existing.GlobalUserName != req.GlobalName {
			existing.UserName = req.UserName
			existing.UserTag = req.UserTag
			existing.GlobalUserName = req.GlobalName
			if err := s.ownerRepo.UpdateUser(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user := &models.Owner{
		ExternalID:     req.ExternalID,
		Type:           models.OwnerTypeUser,
		UserName:       req.UserName,
		UserTag:        req.UserTag,
		GlobalUserName: req.GlobalName,
	}
	if err := s.ownerRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Upsert(ctx, models.DefaultUserSettings(user.ID)); err != nil {
		return nil, err
	}

	s.logger.Info("user provisioned", "owner_id", user.ID, "external_id", user.ExternalID, "name", user.DisplayName())
	return user, nil
}

// ProvisionGuild finds or creates the guild owner for an external identity
func (s *ownerService) ProvisionGuild(ctx context.Context, externalID int64, name string) (*models.Owner, error) {
	existing, err := s.ownerRepo.GetByExternalID(ctx, externalID)
	if err == nil {
		if existing.Type != models.OwnerTypeGuild {
			return nil, fmt.Errorf("owner %d is not a guild: %w", externalID, domain.ErrConflict)
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	guild := &models.Owner{
		ExternalID: externalID,
		Type:       models.OwnerTypeGuild,
		GuildName:  name,
	}
	if err := s.ownerRepo.Create(ctx, guild); err != nil {
		return nil, err
	}

	s.logger.Info("guild provisioned", "owner_id", guild.ID, "external_id", guild.ExternalID, "name", guild.GuildName)
	return guild, nil
}

// EnsureSystemOwner finds or creates the singleton system owner
func (s *ownerService) EnsureSystemOwner(ctx context.Context) (*models.Owner, error) {
	existing, err := s.ownerRepo.GetByExternalID(ctx, models.SystemExternalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	system := &models.Owner{
		ExternalID: models.SystemExternalID,
		Type:       models.OwnerTypeSystem,
	}
	if err := s.ownerRepo.Create(ctx, system); err != nil {
		return nil, err
	}

	s.logger.Info("system owner created", "owner_id", system.ID)
	return system, nil
}

// GetUser retrieves a user owner by internal ID
func (s *ownerService) GetUser(ctx context.Context, id int64) (*models.Owner, error) {
	user, err := s.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsUser() {
		return nil, fmt.Errorf("owner %d is not a user: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

// UpdateUser edits the acting user's profile
func (s *ownerService) UpdateUser(ctx context.Context, actor *models.Owner, req *services.UpdateUserRequest) (*models.Owner, error) {
	if !actor.IsUser() {
		return nil, fmt.Errorf("only users have a profile: %w", domain.ErrUnsupported)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserName, validation.Required, validation.Length(1, config.MaxOwnerNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	actor.UserName = strings.TrimSpace(req.UserName)
	actor.UserTag = req.UserTag
	actor.GlobalUserName = req.GlobalName
	if err := s.ownerRepo.UpdateUser(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", "owner_id", actor.ID, "name", actor.DisplayName())
	return actor, nil
}
