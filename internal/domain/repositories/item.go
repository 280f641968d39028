package repositories

import (
	"context"

	"holding/internal/domain/models"
)

// ItemRepository defines data access for the item catalog.
//
// Scoped queries take the actor and principal owner IDs; they return rows
// owned by either of those plus system-owned rows, ordered actor-owned
// first, then principal-owned, then system-owned, so name collisions
// across scopes resolve predictably.
type ItemRepository interface {
	// GetByID retrieves a catalog item
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// FindByName finds items with an exact (case-insensitive) name
	// visible to the actor/principal scope
	FindByName(ctx context.Context, name string, actorID, principalID int64, limit int) ([]models.Item, error)

	// SearchByName finds items whose name contains the fragment
	// (case-insensitive), visible to the actor/principal scope, ordered
	// by name then owner tier
	SearchByName(ctx context.Context, fragment string, actorID, principalID int64, limit int) ([]models.Item, error)

	// Count returns the total number of catalog rows
	Count(ctx context.Context) (int64, error)

	// CreateBatch inserts catalog items, assigning IDs
	CreateBatch(ctx context.Context, items []*models.Item) error
}
