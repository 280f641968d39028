package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
)

// PostgresUserSettingsRepository implements the UserSettingsRepository interface
type PostgresUserSettingsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserSettingsRepository creates a new user settings repository
func NewUserSettingsRepository(config *RepositoryConfig) repositories.UserSettingsRepository {
	return &PostgresUserSettingsRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves settings for a user
func (r *PostgresUserSettingsRepository) Get(ctx context.Context, ownerID int64) (*models.UserSettings, error) {
	query := fmt.Sprintf(`
		SELECT owner_id, ephemeral_container, ephemeral_user, ephemeral_item, updated_at
		FROM %s
		WHERE owner_id = $1
	`, r.tables.UserSettings)

	var settings models.UserSettings
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, ownerID).Scan(
		&settings.OwnerID,
		&settings.EphemeralContainer,
		&settings.EphemeralUser,
		&settings.EphemeralItem,
		&settings.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("settings for owner %d: %w", ownerID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user settings: %w", err)
	}

	return &settings, nil
}

// Upsert creates or replaces a user's settings row
func (r *PostgresUserSettingsRepository) Upsert(ctx context.Context, settings *models.UserSettings) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, ephemeral_container, ephemeral_user, ephemeral_item, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id) DO UPDATE
		SET ephemeral_container = EXCLUDED.ephemeral_container,
		    ephemeral_user = EXCLUDED.ephemeral_user,
		    ephemeral_item = EXCLUDED.ephemeral_item,
		    updated_at = EXCLUDED.updated_at
	`, r.tables.UserSettings)

	settings.UpdatedAt = time.Now()
	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		settings.OwnerID,
		settings.EphemeralContainer,
		settings.EphemeralUser,
		settings.EphemeralItem,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user settings: %w", err)
	}

	return nil
}
