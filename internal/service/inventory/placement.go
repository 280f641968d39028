package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/services"
)

const rootFallbackNote = " The requested parent could not be used, so it was placed at the container root."

func (s *containerService) AddItem(ctx context.Context, req *services.AddItemRequest, actor, principal *models.Owner) (*models.ContainerSummary, string, error) {
	if actor == nil || !actor.IsUser() {
		return nil, "", fmt.Errorf("only users can add items: %w", domain.ErrUnsupported)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	if req.ItemID == nil && strings.TrimSpace(req.ItemName) == "" {
		return nil, "", fmt.Errorf("an item ID or name must be provided: %w", domain.ErrValidation)
	}

	var (
		summary *models.ContainerSummary
		message string
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		container, tree, err := s.activeTree(txCtx, actor)
		if err != nil {
			return err
		}

		var item *models.Item
		if req.ItemID != nil {
			item, err = s.catalog.FindItemByID(txCtx, *req.ItemID, actor, principal)
		} else {
			item, err = s.catalog.ResolveItem(txCtx, req.ItemName, actor, principal)
		}
		if err != nil {
			return err
		}

		parent, perr := s.optionalParent(tree, container, nil, req.ParentID, req.ParentName)
		fellBack := false
		if perr != nil {
			s.logger.Warn("parent placement failed, falling back to container root",
				"container_id", container.ID,
				"item_id", item.ID,
				"error", perr)
			parent = nil
			fellBack = true
		}

		var parentID *int64
		location := container.Name
		if parent != nil {
			parentID = &parent.ID
			location = tree.Path(parent.ID)
		}

		note := strings.TrimSpace(req.Note)

		switch {
		case item.Containable:
			// Containable items never stack: each copy becomes its own
			// node so it can hold children independently.
			for i := 0; i < req.Quantity; i++ {
				node := &models.ContainerItem{
					ContainerID: container.ID,
					ItemID:      item.ID,
					Quantity:    1,
					ParentID:    parentID,
					Item:        item,
				}
				if note != "" {
					n := note
					node.Note = &n
				}
				if err := s.placedRepo.Insert(txCtx, node); err != nil {
					return err
				}
				tree.Add(node)
			}
			message = fmt.Sprintf("Added %dx '%s'.", req.Quantity, item.Name)

		default:
			if existing := tree.FindStack(item.ID, parentID); existing != nil {
				existing.Quantity += req.Quantity
				if note != "" {
					n := note
					existing.Note = &n
				}
				if err := s.placedRepo.Update(txCtx, existing); err != nil {
					return err
				}
				message = fmt.Sprintf("Increased '%s' by %d.", item.Name, req.Quantity)
			} else {
				node := &models.ContainerItem{
					ContainerID: container.ID,
					ItemID:      item.ID,
					Quantity:    req.Quantity,
					ParentID:    parentID,
					Item:        item,
				}
				if note != "" {
					n := note
					node.Note = &n
				}
				if err := s.placedRepo.Insert(txCtx, node); err != nil {
					return err
				}
				tree.Add(node)
				message = fmt.Sprintf("Added %dx '%s' inside '%s'.", req.Quantity, item.Name, location)
			}
		}

		if fellBack {
			message += rootFallbackNote
		}
		summary = models.Summarize(container, tree, userContext(actor))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return summary, message, nil
}

func (s *containerService) DropItem(ctx context.Context, req *services.DropItemRequest, actor *models.Owner) (*models.ContainerSummary, string, error) {
	if actor == nil || !actor.IsUser() {
		return nil, "", fmt.Errorf("only users can drop items: %w", domain.ErrUnsupported)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	var (
		summary *models.ContainerSummary
		message string
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		container, tree, err := s.activeTree(txCtx, actor)
		if err != nil {
			return err
		}

		node, err := s.findNode(tree, container, req.ID, req.Name)
		if err != nil {
			return err
		}
		if req.Quantity > node.Quantity {
			return fmt.Errorf("the container only has %d of '%s': %w",
				node.Quantity, node.Item.Name, domain.ErrValidation)
		}

		itemName := node.Item.Name
		if req.Quantity == node.Quantity {
			ids := []int64{node.ID}
			if node.Item.Containable {
				children := tree.Children(node.ID)
				if req.DropChildren {
					// Everything under the node goes with it.
					for _, d := range tree.Descendants(node.ID) {
						ids = append(ids, d.ID)
					}
				} else {
					// Children survive and move up to the container root.
					for _, child := range children {
						child.ParentID = nil
						if err := s.placedRepo.Update(txCtx, child); err != nil {
							return err
						}
					}
				}
			}
			if err := s.placedRepo.Delete(txCtx, ids...); err != nil {
				return err
			}
			for _, id := range ids {
				tree.Remove(id)
			}
		} else {
			node.Quantity -= req.Quantity
			if err := s.placedRepo.Update(txCtx, node); err != nil {
				return err
			}
		}

		message = fmt.Sprintf("Removed %dx '%s'.", req.Quantity, itemName)
		if req.DropChildren {
			message = fmt.Sprintf("Removed %dx '%s' and any children.", req.Quantity, itemName)
		}
		summary = models.Summarize(container, tree, userContext(actor))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return summary, message, nil
}

func (s *containerService) ModifyItem(ctx context.Context, req *services.ModifyItemRequest, actor *models.Owner) (*models.ContainerSummary, string, error) {
	if actor == nil || !actor.IsUser() {
		return nil, "", fmt.Errorf("only users can modify items: %w", domain.ErrUnsupported)
	}
	wantsParent := req.NewParentID != nil || strings.TrimSpace(req.NewParentName) != ""
	if wantsParent && req.MoveToRoot {
		return nil, "", fmt.Errorf("cannot specify both a new parent and a move to the container root: %w", domain.ErrValidation)
	}

	var (
		summary *models.ContainerSummary
		message string
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		container, tree, err := s.activeTree(txCtx, actor)
		if err != nil {
			return err
		}

		node, err := s.findNode(tree, container, req.ID, req.Name)
		if err != nil {
			return err
		}

		var fields []string
		if req.Note != nil {
			if strings.TrimSpace(*req.Note) == "" {
				node.Note = nil
			} else {
				n := *req.Note
				node.Note = &n
			}
			fields = append(fields, "note")
		}

		if wantsParent {
			parent, err := s.findNode(tree, container, req.NewParentID, req.NewParentName)
			if err != nil {
				return err
			}
			if err := tree.ValidateParent(node, parent); err != nil {
				return err
			}
			node.ParentID = &parent.ID
			fields = append(fields, "location")
		} else if req.MoveToRoot && node.ParentID != nil {
			node.ParentID = nil
			fields = append(fields, "location")
		}

		if req.NewQuantity != nil {
			if *req.NewQuantity <= 0 {
				return fmt.Errorf("new quantity must be greater than 0: %w", domain.ErrValidation)
			}
			node.Quantity = *req.NewQuantity
			fields = append(fields, "quantity")
		}

		if len(fields) == 0 {
			message = "No changes were made to the item."
			summary = models.Summarize(container, tree, userContext(actor))
			return nil
		}

		if err := s.placedRepo.Update(txCtx, node); err != nil {
			return err
		}
		message = fmt.Sprintf("Modified field(s) [%s] for item: %s.", strings.Join(fields, ", "), node.Item.Name)
		summary = models.Summarize(container, tree, userContext(actor))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return summary, message, nil
}

func (s *containerService) AutocompleteItems(ctx context.Context, prefix string, actor *models.Owner) ([]models.AutoComplete, error) {
	return s.autocompleteNodes(ctx, prefix, actor, false)
}

func (s *containerService) AutocompleteParentItems(ctx context.Context, prefix string, actor *models.Owner) ([]models.AutoComplete, error) {
	return s.autocompleteNodes(ctx, prefix, actor, true)
}

func (s *containerService) autocompleteNodes(ctx context.Context, fragment string, actor *models.Owner, parentsOnly bool) ([]models.AutoComplete, error) {
	if actor == nil || !actor.IsUser() {
		return nil, nil
	}
	container, err := s.containerRepo.GetActiveForUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	tree, err := s.loadTree(ctx, container.ID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(fragment))
	var out []models.AutoComplete
	for _, node := range tree.All() {
		if parentsOnly && (node.Item == nil || !node.Item.Containable) {
			continue
		}
		path := tree.Path(node.ID)
		if needle != "" && !strings.Contains(strings.ToLower(path), needle) {
			continue
		}
		out = append(out, models.AutoComplete{
			ID:          node.ID,
			Label:       path,
			Description: describeNode(node),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	if len(out) > autocompleteLimit {
		out = out[:autocompleteLimit]
	}
	return out, nil
}
