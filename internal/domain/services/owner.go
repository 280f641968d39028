package services

import (
	"context"

	"holding/internal/domain/models"
)

// ProvisionUserRequest carries the identity fields the authentication
// collaborator forwards for the acting user.
type ProvisionUserRequest struct {
	ExternalID int64
	UserName   string
	UserTag    string
	GlobalName string
}

// UpdateUserRequest edits the calling user's profile.
type UpdateUserRequest struct {
	UserName   string `json:"user_name"`
	UserTag    string `json:"user_tag,omitempty"`
	GlobalName string `json:"global_user_name,omitempty"`
}

// UpdateSettingsRequest replaces the calling user's preference flags.
type UpdateSettingsRequest struct {
	EphemeralContainer bool `json:"ephemeral_container"`
	EphemeralUser      bool `json:"ephemeral_user"`
	EphemeralItem      bool `json:"ephemeral_item"`
}

// OwnerService provisions and maintains owners. Users and guilds are
// created on first reference; the system owner is ensured at bootstrap.
type OwnerService interface {
	// ProvisionUser finds or creates the user owner for an external
	// identity, refreshing its profile fields and last-active stamp
	ProvisionUser(ctx context.Context, req *ProvisionUserRequest) (*models.Owner, error)

	// ProvisionGuild finds or creates the guild owner for an external
	// identity
	ProvisionGuild(ctx context.Context, externalID int64, name string) (*models.Owner, error)

	// EnsureSystemOwner finds or creates the singleton system owner
	EnsureSystemOwner(ctx context.Context) (*models.Owner, error)

	// GetUser retrieves a user owner by internal ID
	GetUser(ctx context.Context, id int64) (*models.Owner, error)

	// UpdateUser edits the acting user's profile
	UpdateUser(ctx context.Context, actor *models.Owner, req *UpdateUserRequest) (*models.Owner, error)
}

// SettingsService reads and writes per-user preferences.
type SettingsService interface {
	GetSettings(ctx context.Context, actor *models.Owner) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, actor *models.Owner, req *UpdateSettingsRequest) (*models.UserSettings, error)
}
