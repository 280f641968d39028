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

// PostgresContainerItemRepository implements the ContainerItemRepository interface
type PostgresContainerItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewContainerItemRepository creates a new container item repository
func NewContainerItemRepository(config *RepositoryConfig) repositories.ContainerItemRepository {
	return &PostgresContainerItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListByContainer retrieves every placed item in a container with its
// catalog item joined, oldest first. The flat rows are assembled into a
// Tree by the service layer.
func (r *PostgresContainerItemRepository) ListByContainer(ctx context.Context, containerID int64) ([]*models.ContainerItem, error) {
	query := fmt.Sprintf(`
		SELECT ci.id, ci.container_id, ci.item_id, ci.quantity, ci.note, ci.parent_id, ci.created_at, ci.updated_at,
		       %s
		FROM %s ci
		JOIN %s i ON i.id = ci.item_id
		WHERE ci.container_id = $1
		ORDER BY ci.id
	`, itemColumns, r.tables.ContainerItems, r.tables.Items)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, containerID)
	if err != nil {
		return nil, fmt.Errorf("list container items: %w", err)
	}
	defer rows.Close()

	var items []*models.ContainerItem
	for rows.Next() {
		var ci models.ContainerItem
		var item models.Item
		err := rows.Scan(
			&ci.ID,
			&ci.ContainerID,
			&ci.ItemID,
			&ci.Quantity,
			&ci.Note,
			&ci.ParentID,
			&ci.CreatedAt,
			&ci.UpdatedAt,
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Weight,
			&item.WeightUnit,
			&item.Value,
			&item.ValueUnit,
			&item.Containable,
			&item.CreatedByID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan container item: %w", err)
		}
		ci.Item = &item
		items = append(items, &ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate container items: %w", err)
	}

	return items, nil
}

// Insert creates a placed item and assigns its ID
func (r *PostgresContainerItemRepository) Insert(ctx context.Context, ci *models.ContainerItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (container_id, item_id, quantity, note, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.ContainerItems)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		ci.ContainerID,
		ci.ItemID,
		ci.Quantity,
		ci.Note,
		ci.ParentID,
		time.Now(),
	).Scan(&ci.ID, &ci.CreatedAt, &ci.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("container item references a missing row: %w", domain.ErrValidation)
		}
		return fmt.Errorf("insert container item: %w", err)
	}

	return nil
}

// Update persists quantity, note and parent changes
func (r *PostgresContainerItemRepository) Update(ctx context.Context, ci *models.ContainerItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET quantity = $1, note = $2, parent_id = $3, updated_at = $4
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.ContainerItems)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		ci.Quantity,
		ci.Note,
		ci.ParentID,
		time.Now(),
		ci.ID,
	).Scan(&ci.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("container item %d: %w", ci.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update container item: %w", err)
	}

	return nil
}

// Delete removes placed items by ID
func (r *PostgresContainerItemRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.ContainerItems)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete container items: %w", err)
	}
	return nil
}
