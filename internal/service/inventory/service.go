package inventory

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
	listLimit         = 50
	autocompleteLimit = 25
)

type containerService struct {
	containerRepo repositories.ContainerRepository
	placedRepo    repositories.ContainerItemRepository
	ownerRepo     repositories.OwnerRepository
	catalog       services.ItemService
	txManager     repositories.TransactionManager
	authorizer    services.ResourceAuthorizer
	logger        *slog.Logger
}

// NewContainerService creates the container service: lifecycle,
// active-container selection and the item-placement engine.
func NewContainerService(
	containerRepo repositories.ContainerRepository,
	placedRepo repositories.ContainerItemRepository,
	ownerRepo repositories.OwnerRepository,
	catalog services.ItemService,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.ContainerService {
	return &containerService{
		containerRepo: containerRepo,
		placedRepo:    placedRepo,
		ownerRepo:     ownerRepo,
		catalog:       catalog,
		txManager:     txManager,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// loadTree assembles the container's placed items into an arena tree.
func (s *containerService) loadTree(ctx context.Context, containerID int64) (*models.Tree, error) {
	items, err := s.placedRepo.ListByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return models.NewTree(containerID, items), nil
}

// activeTree loads and locks the actor's active container together with
// its tree. Must run inside a transaction: the row lock serializes
// concurrent mutations of the same container.
func (s *containerService) activeTree(ctx context.Context, actor *models.Owner) (*models.Container, *models.Tree, error) {
	container, err := s.containerRepo.GetActiveForUser(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.containerRepo.Lock(ctx, container.ID); err != nil {
		return nil, nil, err
	}
	tree, err := s.loadTree(ctx, container.ID)
	if err != nil {
		return nil, nil, err
	}
	return container, tree, nil
}

// findNode resolves a placed item inside the tree, by ID when given,
// falling back to a case-insensitive match on the full path name. This
// is the hard-failing finder: zero matches or an ambiguous name abort
// the caller's operation.
func (s *containerService) findNode(tree *models.Tree, container *models.Container, id *int64, name string) (*models.ContainerItem, error) {
	if id == nil && strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("an item ID or name must be provided: %w", domain.ErrValidation)
	}

	if id != nil {
		node, ok := tree.Get(*id)
		if !ok {
			return nil, fmt.Errorf("item %d not found in container %q: %w", *id, container.Name, domain.ErrNotFound)
		}
		return node, nil
	}

	matches := tree.FindByPath(name)
	if len(matches) == 0 {
		return nil, fmt.Errorf("item %q not found in container %q: %w", name, container.Name, domain.ErrNotFound)
	}
	if len(matches) > 1 {
		candidates := make([]domain.Candidate, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, domain.Candidate{
				ID:          m.ID,
				Label:       tree.Path(m.ID),
				Description: describeNode(m),
			})
		}
		return nil, domain.NewAmbiguousError(name, candidates)
	}
	return matches[0], nil
}

// optionalParent resolves a parent placement hint. No hint is a valid
// root placement; a hint that is present resolves through the hard
// finder and the containment rules, and any failure is the caller's to
// handle (Add soft-fails it, Modify does not).
func (s *containerService) optionalParent(tree *models.Tree, container *models.Container, child *models.ContainerItem, id *int64, name string) (*models.ContainerItem, error) {
	if id == nil && strings.TrimSpace(name) == "" {
		return nil, nil
	}
	parent, err := s.findNode(tree, container, id, name)
	if err != nil {
		return nil, err
	}
	if err := tree.ValidateParent(child, parent); err != nil {
		return nil, err
	}
	return parent, nil
}

// userContext returns the owner whose primary-container pointer drives
// the summary's active flag.
func userContext(actor *models.Owner) *models.Owner {
	if actor != nil && actor.IsUser() {
		return actor
	}
	return nil
}

// describeNode renders the quantity+note description used by
// autocomplete and disambiguation candidates, e.g. "x3 the good ones".
func describeNode(ci *models.ContainerItem) string {
	desc := fmt.Sprintf("x%d", ci.Quantity)
	if ci.Note != nil && strings.TrimSpace(*ci.Note) != "" {
		desc += " " + *ci.Note
	}
	return desc
}
