package repositories

import (
	"context"

	"holding/internal/domain/models"
)

// OwnerRepository defines data access for the owner variants.
type OwnerRepository interface {
	// GetByID retrieves an owner by internal ID
	GetByID(ctx context.Context, id int64) (*models.Owner, error)

	// GetByExternalID retrieves an owner by its external identity
	GetByExternalID(ctx context.Context, externalID int64) (*models.Owner, error)

	// Create inserts a new owner of any variant and assigns its ID
	Create(ctx context.Context, owner *models.Owner) error

	// UpdateUser persists the mutable profile fields of a user owner
	UpdateUser(ctx context.Context, owner *models.Owner) error

	// SetPrimaryContainer rewires (or clears, with nil) a user's
	// active-container reference
	SetPrimaryContainer(ctx context.Context, userID int64, containerID *int64) error
}

// UserSettingsRepository defines data access for per-user settings.
type UserSettingsRepository interface {
	// Get retrieves settings for a user
	Get(ctx context.Context, ownerID int64) (*models.UserSettings, error)

	// Upsert creates or replaces a user's settings row
	Upsert(ctx context.Context, settings *models.UserSettings) error
}
