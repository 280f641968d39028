package models

import "time"

// OwnerType discriminates the closed set of resource owner kinds.
type OwnerType string

const (
	OwnerTypeUser   OwnerType = "USER"
	OwnerTypeGuild  OwnerType = "GUILD"
	OwnerTypeSystem OwnerType = "SYSTEM"
)

// SystemExternalID is the well-known external identity of the singleton
// system owner. It marks catalog items as globally visible.
const SystemExternalID int64 = -1

// Owner is a resource owner: an individual user, a guild, or the system
// sentinel. It is a tagged variant rather than an interface hierarchy;
// all authorization and placement logic switches on Type explicitly.
type Owner struct {
	ID         int64     `json:"id" db:"id"`
	ExternalID int64     `json:"external_id" db:"external_id"`
	Type       OwnerType `json:"type" db:"owner_type"`

	// User-only fields. Zero values for guild and system owners.
	UserName           string `json:"user_name,omitempty" db:"user_name"`
	UserTag            string `json:"user_tag,omitempty" db:"user_tag"`
	GlobalUserName     string `json:"global_user_name,omitempty" db:"global_user_name"`
	PrimaryContainerID *int64 `json:"primary_container_id,omitempty" db:"primary_container_id"`

	// Guild-only field.
	GuildName string `json:"guild_name,omitempty" db:"guild_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsUser reports whether this owner is an individual user. Only users
// hold an active container.
func (o *Owner) IsUser() bool {
	return o.Type == OwnerTypeUser
}

// DisplayName returns the human-facing name for the owner variant.
func (o *Owner) DisplayName() string {
	switch o.Type {
	case OwnerTypeUser:
		if o.GlobalUserName != "" {
			return o.GlobalUserName
		}
		return o.UserName
	case OwnerTypeGuild:
		return o.GuildName
	default:
		return "System"
	}
}

// UserSettings holds a user's per-surface ephemeral-reply preferences.
// A row is created alongside the user and every flag defaults to true.
type UserSettings struct {
	OwnerID            int64     `json:"-" db:"owner_id"`
	EphemeralContainer bool      `json:"ephemeral_container" db:"ephemeral_container"`
	EphemeralUser      bool      `json:"ephemeral_user" db:"ephemeral_user"`
	EphemeralItem      bool      `json:"ephemeral_item" db:"ephemeral_item"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultUserSettings returns the settings assigned to a freshly
// provisioned user.
func DefaultUserSettings(ownerID int64) *UserSettings {
	return &UserSettings{
		OwnerID:            ownerID,
		EphemeralContainer: true,
		EphemeralUser:      true,
		EphemeralItem:      true,
	}
}
