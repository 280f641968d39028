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

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *RepositoryConfig) repositories.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const itemColumns = `i.id, i.name, i.description, i.weight, i.weight_unit, i.value, i.value_unit, i.is_parent, i.created_by_id, i.created_at, i.updated_at`

func scanItem(row interface{ Scan(...interface{}) error }, it *models.Item) error {
	return row.Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Weight,
		&it.WeightUnit,
		&it.Value,
		&it.ValueUnit,
		&it.Containable,
		&it.CreatedByID,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
}

// GetByID retrieves a catalog item
func (r *PostgresItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s i
		WHERE i.id = $1
	`, itemColumns, r.tables.Items)

	var item models.Item
	err := scanItem(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &item)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

// FindByName finds items with an exact (case-insensitive) name visible to
// the actor/principal scope, actor-owned first, then principal-owned,
// then system-owned.
func (r *PostgresItemRepository) FindByName(ctx context.Context, name string, actorID, principalID int64, limit int) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s i
		JOIN %s o ON o.id = i.created_by_id
		WHERE LOWER(i.name) = LOWER($1)
		  AND (o.id = $2 OR o.id = $3 OR o.owner_type = 'SYSTEM')
		ORDER BY CASE WHEN o.id = $2 THEN 1 WHEN o.id = $3 THEN 2 ELSE 3 END, i.id
		LIMIT $4
	`, itemColumns, r.tables.Items, r.tables.Owners)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, name, actorID, principalID, limit)
	if err != nil {
		return nil, fmt.Errorf("find items by name: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// SearchByName finds items whose name contains the fragment, visible to
// the actor/principal scope, ordered by name then owner tier.
func (r *PostgresItemRepository) SearchByName(ctx context.Context, fragment string, actorID, principalID int64, limit int) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s i
		JOIN %s o ON o.id = i.created_by_id
		WHERE i.name ILIKE '%%' || $1 || '%%'
		  AND (o.id = $2 OR o.id = $3 OR o.owner_type = 'SYSTEM')
		ORDER BY i.name, CASE WHEN o.id = $2 THEN 1 WHEN o.id = $3 THEN 2 ELSE 3 END
		LIMIT $4
	`, itemColumns, r.tables.Items, r.tables.Owners)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, fragment, actorID, principalID, limit)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Count returns the total number of catalog rows
func (r *PostgresItemRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Items)

	var count int64
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// CreateBatch inserts catalog items, assigning IDs
func (r *PostgresItemRepository) CreateBatch(ctx context.Context, items []*models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, weight, weight_unit, value, value_unit, is_parent, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Items)

	now := time.Now()
	for _, item := range items {
		err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
			item.Name,
			item.Description,
			item.Weight,
			item.WeightUnit,
			item.Value,
			item.ValueUnit,
			item.Containable,
			item.CreatedByID,
			now,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create item %q: %w", item.Name, err)
		}
	}

	return nil
}

func collectItems(rows pgx.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
