package services

import (
	"context"

	"holding/internal/domain/models"
)

// ItemService resolves and searches the item catalog within an
// actor/principal visibility scope.
type ItemService interface {
	// FindItemByID retrieves a catalog item the scope is allowed to see
	FindItemByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.Item, error)

	// ResolveItem resolves an exact name to one item, failing with
	// NotFound on zero matches and Ambiguous on an owner-tier tie
	ResolveItem(ctx context.Context, name string, actor, principal *models.Owner) (*models.Item, error)

	// FindItems lists items matching an exact name within the scope
	FindItems(ctx context.Context, name string, actor, principal *models.Owner) ([]models.Item, error)

	// AutocompleteItems suggests items whose name contains the fragment
	AutocompleteItems(ctx context.Context, fragment string, actor, principal *models.Owner) ([]models.AutoComplete, error)
}
