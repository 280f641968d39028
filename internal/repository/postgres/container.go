package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
)

// PostgresContainerRepository implements the ContainerRepository interface
type PostgresContainerRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewContainerRepository creates a new container repository
func NewContainerRepository(config *RepositoryConfig) repositories.ContainerRepository {
	return &PostgresContainerRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresContainerRepository) selectWithOwner() string {
	return fmt.Sprintf(`
		SELECT c.id, c.owner_id, c.name, c.description, c.kind, c.last_active_at, c.created_at, c.updated_at,
		       %s
		FROM %s c
		JOIN %s o ON o.id = c.owner_id
	`, ownerColumns, r.tables.Containers, r.tables.Owners)
}

func scanContainerWithOwner(row interface{ Scan(...interface{}) error }) (*models.Container, error) {
	var c models.Container
	var o models.Owner
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Description,
		&c.Kind,
		&c.LastActiveAt,
		&c.CreatedAt,
		&c.UpdatedAt,
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
	if err != nil {
		return nil, err
	}
	c.Owner = &o
	return &c, nil
}

// Create inserts a new container and assigns its ID
func (r *PostgresContainerRepository) Create(ctx context.Context, container *models.Container) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name, description, kind, last_active_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Containers)

	now := time.Now()
	if container.LastActiveAt.IsZero() {
		container.LastActiveAt = now
	}
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		container.OwnerID,
		container.Name,
		container.Description,
		container.Kind,
		container.LastActiveAt,
		now,
	).Scan(&container.ID, &container.CreatedAt, &container.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("container %q: %w", container.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create container: %w", err)
	}

	return nil
}

// GetByID retrieves a container with its owner joined
func (r *PostgresContainerRepository) GetByID(ctx context.Context, id int64) (*models.Container, error) {
	query := r.selectWithOwner() + ` WHERE c.id = $1`

	container, err := scanContainerWithOwner(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("container %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get container: %w", err)
	}

	return container, nil
}

// GetByOwnerAndName retrieves a container by its unique (owner, name) pair
func (r *PostgresContainerRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Container, error) {
	query := r.selectWithOwner() + ` WHERE c.owner_id = $1 AND c.name = $2`

	container, err := scanContainerWithOwner(GetExecutor(ctx, r.pool).QueryRow(ctx, query, ownerID, name))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("container %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get container by name: %w", err)
	}

	return container, nil
}

// ExistsByOwnerAndName reports whether the (owner, name) pair is taken
func (r *PostgresContainerRepository) ExistsByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE owner_id = $1 AND name = $2)
	`, r.tables.Containers)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, ownerID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check container name: %w", err)
	}
	return exists, nil
}

// GetActiveForUser retrieves the user's primary container with its owner joined
func (r *PostgresContainerRepository) GetActiveForUser(ctx context.Context, userID int64) (*models.Container, error) {
	query := r.selectWithOwner() + fmt.Sprintf(`
		JOIN %s u ON u.primary_container_id = c.id
		WHERE u.id = $1
	`, r.tables.Owners)

	container, err := scanContainerWithOwner(GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("active container for user %d: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get active container: %w", err)
	}

	return container, nil
}

// ListForOwners lists containers owned by any of the given owners,
// optionally filtered by exact name, most recently active first
func (r *PostgresContainerRepository) ListForOwners(ctx context.Context, name *string, ownerIDs []int64, limit int) ([]models.Container, error) {
	query := r.selectWithOwner() + `
		WHERE c.owner_id = ANY($1)
		  AND ($2::text IS NULL OR LOWER(c.name) = LOWER($2))
		ORDER BY c.last_active_at DESC
		LIMIT $3
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerIDs, name, limit)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	return collectContainers(rows)
}

// SearchForOwners lists containers owned by any of the given owners whose
// name starts with prefix, most recently active first
func (r *PostgresContainerRepository) SearchForOwners(ctx context.Context, prefix string, ownerIDs []int64, limit int) ([]models.Container, error) {
	query := r.selectWithOwner() + `
		WHERE c.owner_id = ANY($1)
		  AND c.name ILIKE $2 || '%'
		ORDER BY c.last_active_at DESC
		LIMIT $3
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerIDs, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("search containers: %w", err)
	}
	defer rows.Close()

	return collectContainers(rows)
}

// Lock acquires a row lock on the container for the duration of the
// surrounding transaction. Outside a transaction the lock would be
// released immediately, so that is a programming error worth surfacing.
func (r *PostgresContainerRepository) Lock(ctx context.Context, id int64) error {
	if repositories.GetTx(ctx) == nil {
		return fmt.Errorf("container lock requires a transaction")
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, r.tables.Containers)

	var got int64
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&got); err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("container %d: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("lock container: %w", err)
	}
	return nil
}

// Touch stamps the container's last-active time
func (r *PostgresContainerRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET last_active_at = $1, updated_at = $1 WHERE id = $2
	`, r.tables.Containers)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("touch container: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("container %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a container; placed items cascade via foreign key
func (r *PostgresContainerRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Containers)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("container %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func collectContainers(rows pgx.Rows) ([]models.Container, error) {
	var containers []models.Container
	for rows.Next() {
		c, err := scanContainerWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		containers = append(containers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate containers: %w", err)
	}
	return containers, nil
}
