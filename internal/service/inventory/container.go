package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"holding/internal/config"
	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/services"
)

func (s *containerService) CreateContainer(ctx context.Context, req *services.CreateContainerRequest, actor, principal *models.Owner) (*models.ContainerSummary, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxContainerNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	var summary *models.ContainerSummary
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		taken, err := s.containerRepo.ExistsByOwnerAndName(txCtx, principal.ID, req.Name)
		if err != nil {
			return err
		}
		if taken {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("A container named '%s' already exists for %s.", req.Name, principal.DisplayName()),
				ResourceType: "container",
			}
		}

		container := &models.Container{
			OwnerID:     principal.ID,
			Name:        req.Name,
			Description: req.Description,
			Kind:        req.Kind,
		}
		if err := s.containerRepo.Create(txCtx, container); err != nil {
			return err
		}
		container.Owner = principal

		// A user's first container becomes primary even without the
		// explicit flag, so a fresh account is immediately usable.
		if principal.IsUser() && (req.Active || principal.PrimaryContainerID == nil) {
			if err := s.activate(txCtx, container, principal); err != nil {
				return err
			}
		}

		summary = models.Summarize(container, models.NewTree(container.ID, nil), userContext(principal))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *containerService) FindContainerByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.ContainerSummary, error) {
	container, err := s.containerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanView(container.Owner, actor, principal) {
		// Hidden rather than forbidden: the caller learns nothing about
		// containers outside their scope.
		return nil, fmt.Errorf("container %d not found: %w", id, domain.ErrNotFound)
	}
	tree, err := s.loadTree(ctx, container.ID)
	if err != nil {
		return nil, err
	}
	return models.Summarize(container, tree, userContext(actor)), nil
}

func (s *containerService) FindContainers(ctx context.Context, name string, actor, principal *models.Owner) ([]models.ContainerSummary, error) {
	var filter *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		filter = &trimmed
	}

	containers, err := s.containerRepo.ListForOwners(ctx, filter, scopeOwnerIDs(actor, principal), listLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ContainerSummary, 0, len(containers))
	for i := range containers {
		tree, err := s.loadTree(ctx, containers[i].ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *models.Summarize(&containers[i], tree, userContext(actor)))
	}
	return summaries, nil
}

func (s *containerService) AutocompleteContainers(ctx context.Context, prefix string, actor, principal *models.Owner) ([]models.AutoComplete, error) {
	containers, err := s.containerRepo.SearchForOwners(ctx, strings.TrimSpace(prefix), scopeOwnerIDs(actor, principal), autocompleteLimit)
	if err != nil {
		return nil, err
	}

	out := make([]models.AutoComplete, 0, len(containers))
	for _, c := range containers {
		desc := ""
		if c.Owner != nil {
			desc = c.Owner.DisplayName()
		}
		out = append(out, models.AutoComplete{ID: c.ID, Label: c.Name, Description: desc})
	}
	return out, nil
}

func (s *containerService) DeleteContainer(ctx context.Context, id int64, confirmName string, actor, principal *models.Owner) (*models.DeletedEntity, error) {
	var deleted *models.DeletedEntity
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		container, err := s.containerRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !s.authorizer.CanMutate(container.Owner, actor, principal) {
			return fmt.Errorf("cannot delete container %d: %w", id, domain.ErrForbidden)
		}
		if !strings.EqualFold(strings.TrimSpace(confirmName), container.Name) {
			return fmt.Errorf("provided name '%s' does not match the container's actual name '%s': %w",
				confirmName, container.Name, domain.ErrValidation)
		}

		// Deleting the actor's active container leaves them with no
		// primary rather than a dangling pointer.
		if actor != nil && actor.IsUser() && actor.PrimaryContainerID != nil && *actor.PrimaryContainerID == container.ID {
			if err := s.ownerRepo.SetPrimaryContainer(txCtx, actor.ID, nil); err != nil {
				return err
			}
			actor.PrimaryContainerID = nil
		}

		if err := s.containerRepo.Delete(txCtx, container.ID); err != nil {
			return err
		}
		deleted = &models.DeletedEntity{ID: container.ID, Name: container.Name, Type: "Container"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *containerService) ActivateContainerByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.ContainerSummary, error) {
	if actor == nil || !actor.IsUser() {
		return nil, fmt.Errorf("only users can activate containers: %w", domain.ErrUnsupported)
	}

	var summary *models.ContainerSummary
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		container, err := s.containerRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !s.authorizer.CanMutate(container.Owner, actor, principal) {
			return fmt.Errorf("container %d not found: %w", id, domain.ErrNotFound)
		}
		if err := s.activate(txCtx, container, actor); err != nil {
			return err
		}

		tree, err := s.loadTree(txCtx, container.ID)
		if err != nil {
			return err
		}
		summary = models.Summarize(container, tree, actor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *containerService) ActivateContainerByName(ctx context.Context, name string, priority services.OwnerPriority, actor, principal *models.Owner) (*models.ContainerSummary, error) {
	if actor == nil || !actor.IsUser() {
		return nil, fmt.Errorf("only users can activate containers: %w", domain.ErrUnsupported)
	}
	name = strings.TrimSpace(name)

	var summary *models.ContainerSummary
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		userContainer, err := s.containerRepo.GetByOwnerAndName(txCtx, actor.ID, name)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		var guildContainer *models.Container
		if principal != nil && principal.ID != actor.ID {
			guildContainer, err = s.containerRepo.GetByOwnerAndName(txCtx, principal.ID, name)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}

		container := userContainer
		if priority == services.OwnerPriorityGuild && guildContainer != nil {
			container = guildContainer
		}
		if container == nil {
			container = guildContainer
		}
		if container == nil {
			return fmt.Errorf("container with name '%s' not found for user or their guild: %w", name, domain.ErrNotFound)
		}

		if err := s.activate(txCtx, container, actor); err != nil {
			return err
		}

		tree, err := s.loadTree(txCtx, container.ID)
		if err != nil {
			return err
		}
		summary = models.Summarize(container, tree, actor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *containerService) FindActiveContainer(ctx context.Context, actor *models.Owner) (*models.ContainerSummary, error) {
	if actor == nil || !actor.IsUser() {
		return nil, fmt.Errorf("only users have an active container: %w", domain.ErrUnsupported)
	}
	container, err := s.containerRepo.GetActiveForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	tree, err := s.loadTree(ctx, container.ID)
	if err != nil {
		return nil, err
	}
	return models.Summarize(container, tree, actor), nil
}

// activate touches the container and repoints the user's primary at it.
// The in-memory owner is updated so summaries built in the same call see
// the new active flag.
func (s *containerService) activate(ctx context.Context, container *models.Container, user *models.Owner) error {
	now := time.Now().UTC()
	if err := s.containerRepo.Touch(ctx, container.ID, now); err != nil {
		return err
	}
	if err := s.ownerRepo.SetPrimaryContainer(ctx, user.ID, &container.ID); err != nil {
		return err
	}
	container.LastActiveAt = now
	user.PrimaryContainerID = &container.ID
	return nil
}

// scopeOwnerIDs builds the dedup'd owner scope for listing: the actor's
// own containers plus the principal's when they differ.
func scopeOwnerIDs(actor, principal *models.Owner) []int64 {
	var ids []int64
	if actor != nil {
		ids = append(ids, actor.ID)
	}
	if principal != nil && (actor == nil || principal.ID != actor.ID) {
		ids = append(ids, principal.ID)
	}
	return ids
}
