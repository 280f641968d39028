package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
	"holding/internal/domain/services"
)

const (
	findLimit         = 50
	autocompleteLimit = 25
)

type itemService struct {
	itemRepo   repositories.ItemRepository
	ownerRepo  repositories.OwnerRepository
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewItemService creates a new catalog item service
func NewItemService(
	itemRepo repositories.ItemRepository,
	ownerRepo repositories.OwnerRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		ownerRepo:  ownerRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// FindItemByID retrieves a catalog item the scope is allowed to see
func (s *itemService) FindItemByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	creator, err := s.ownerRepo.GetByID(ctx, item.CreatedByID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanView(creator, actor, principal) {
		// Out of scope reads as absent, not forbidden.
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return item, nil
}

// ResolveItem resolves an exact name to one catalog item within the
// actor/principal scope. Candidates come back owner-priority ordered
// (actor, then principal, then system); the first candidate wins unless
// the second one ties at the same tier, which is ambiguous.
func (s *itemService) ResolveItem(ctx context.Context, name string, actor, principal *models.Owner) (*models.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("an item name is required: %w", domain.ErrValidation)
	}

	items, err := s.itemRepo.FindByName(ctx, name, actor.ID, principal.ID, findLimit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item %q: %w", name, domain.ErrNotFound)
	}
	if len(items) > 1 && s.tier(&items[0], actor, principal) == s.tier(&items[1], actor, principal) {
		candidates := make([]domain.Candidate, 0, len(items))
		for _, item := range items {
			candidates = append(candidates, domain.Candidate{
				ID:          item.ID,
				Label:       item.Name,
				Description: describeItem(&item),
			})
		}
		return nil, domain.NewAmbiguousError(name, candidates)
	}

	return &items[0], nil
}

// tier ranks an item's creator within the lookup scope: actor-owned
// first, then principal-owned, then system-owned.
func (s *itemService) tier(item *models.Item, actor, principal *models.Owner) int {
	switch item.CreatedByID {
	case actor.ID:
		return 1
	case principal.ID:
		return 2
	default:
		return 3
	}
}

// FindItems lists items matching an exact name within the scope
func (s *itemService) FindItems(ctx context.Context, name string, actor, principal *models.Owner) ([]models.Item, error) {
	s.logger.Debug("finding items", "name", name, "actor", actor.DisplayName(), "principal", principal.DisplayName())
	return s.itemRepo.FindByName(ctx, name, actor.ID, principal.ID, findLimit)
}

// AutocompleteItems suggests items whose name contains the fragment
func (s *itemService) AutocompleteItems(ctx context.Context, fragment string, actor, principal *models.Owner) ([]models.AutoComplete, error) {
	items, err := s.itemRepo.SearchByName(ctx, fragment, actor.ID, principal.ID, autocompleteLimit)
	if err != nil {
		return nil, err
	}

	out := make([]models.AutoComplete, 0, len(items))
	for _, item := range items {
		out = append(out, models.AutoComplete{
			ID:          item.ID,
			Label:       item.Name,
			Description: describeItem(&item),
		})
	}
	return out, nil
}

func describeItem(item *models.Item) string {
	if item.Description != nil {
		return *item.Description
	}
	return ""
}
