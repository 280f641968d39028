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

// PostgresOwnerRepository implements the OwnerRepository interface
type PostgresOwnerRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(config *RepositoryConfig) repositories.OwnerRepository {
	return &PostgresOwnerRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const ownerColumns = `id, external_id, owner_type, user_name, user_tag, global_user_name, primary_container_id, guild_name, created_at, updated_at`

func scanOwner(row interface{ Scan(...interface{}) error }, o *models.Owner) error {
	return row.Scan(
		&o.ID,
		&o.ExternalID,
		&o.Type,
		&o.UserName,
		&o.UserTag,
		&o.GlobalUserName,
		&o.PrimaryContainerID,
		&o.GuildName,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

// GetByID retrieves an owner by internal ID
func (r *PostgresOwnerRepository) GetByID(ctx context.Context, id int64) (*models.Owner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, ownerColumns, r.tables.Owners)

	var owner models.Owner
	err := scanOwner(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &owner)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("owner %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}

	return &owner, nil
}

// GetByExternalID retrieves an owner by its external identity
func (r *PostgresOwnerRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.Owner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE external_id = $1
	`, ownerColumns, r.tables.Owners)

	var owner models.Owner
	err := scanOwner(GetExecutor(ctx, r.pool).QueryRow(ctx, query, externalID), &owner)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("owner with external id %d: %w", externalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get owner by external id: %w", err)
	}

	return &owner, nil
}

// Create inserts a new owner of any variant and assigns its ID
func (r *PostgresOwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (external_id, owner_type, user_name, user_tag, global_user_name, guild_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Owners)

	now := time.Now()
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		owner.ExternalID,
		owner.Type,
		owner.UserName,
		owner.UserTag,
		owner.GlobalUserName,
		owner.GuildName,
		now,
	).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("owner with external id %d: %w", owner.ExternalID, domain.ErrConflict)
		}
		return fmt.Errorf("create owner: %w", err)
	}

	return nil
}

// UpdateUser persists the mutable profile fields of a user owner
func (r *PostgresOwnerRepository) UpdateUser(ctx context.Context, owner *models.Owner) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET user_name = $1, user_tag = $2, global_user_name = $3, updated_at = $4
		WHERE id = $5 AND owner_type = 'USER'
	`, r.tables.Owners)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		owner.UserName,
		owner.UserTag,
		owner.GlobalUserName,
		time.Now(),
		owner.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", owner.ID, domain.ErrNotFound)
	}

	return nil
}

// SetPrimaryContainer rewires (or clears, with nil) a user's
// active-container reference
func (r *PostgresOwnerRepository) SetPrimaryContainer(ctx context.Context, userID int64, containerID *int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET primary_container_id = $1, updated_at = $2
		WHERE id = $3 AND owner_type = 'USER'
	`, r.tables.Owners)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, containerID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("set primary container: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	return nil
}
