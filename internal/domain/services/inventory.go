package services

import (
	"context"

	"holding/internal/domain/models"
)

// OwnerPriority picks which owner's container wins when activating by a
// name that exists for both the actor and the principal.
type OwnerPriority string

const (
	OwnerPriorityUser  OwnerPriority = "USER"
	OwnerPriorityGuild OwnerPriority = "GUILD"
)

// CreateContainerRequest creates a container for the principal.
type CreateContainerRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	// Active makes the new container the actor's primary container.
	// A user's very first container becomes primary regardless.
	Active bool `json:"active"`
}

// AddItemRequest places a catalog item into the actor's active container.
// ItemID wins over ItemName when both are given.
type AddItemRequest struct {
	ItemID   *int64 `json:"item_id,omitempty"`
	ItemName string `json:"item_name,omitempty"`
	Quantity int    `json:"quantity"`
	// Optional parent placement hint. A hint that fails to resolve or
	// validate degrades to root placement instead of aborting the add.
	ParentID   *int64 `json:"parent_id,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
	Note       string `json:"note,omitempty"`
}

// DropItemRequest removes quantity from a placed item in the actor's
// active container. Resolution failures abort the operation.
type DropItemRequest struct {
	ID           *int64 `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Quantity     int    `json:"quantity"`
	DropChildren bool   `json:"drop_children"`
}

// ModifyItemRequest edits a placed item in the actor's active container.
// Note is tri-state: absent leaves the note alone, blank clears it.
// NewParent* and MoveToRoot are mutually exclusive.
type ModifyItemRequest struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Note          *string `json:"note,omitempty"`
	NewQuantity   *int    `json:"new_quantity,omitempty"`
	NewParentID   *int64  `json:"new_parent_id,omitempty"`
	NewParentName string  `json:"new_parent_name,omitempty"`
	MoveToRoot    bool    `json:"move_to_root"`
}

// ContainerService is the placement engine plus container lifecycle and
// active-container selection. Every operation takes the actor and
// principal explicitly; nothing is ambient.
type ContainerService interface {
	CreateContainer(ctx context.Context, req *CreateContainerRequest, actor, principal *models.Owner) (*models.ContainerSummary, error)
	FindContainerByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.ContainerSummary, error)
	FindContainers(ctx context.Context, name string, actor, principal *models.Owner) ([]models.ContainerSummary, error)
	AutocompleteContainers(ctx context.Context, prefix string, actor, principal *models.Owner) ([]models.AutoComplete, error)
	DeleteContainer(ctx context.Context, id int64, confirmName string, actor, principal *models.Owner) (*models.DeletedEntity, error)

	ActivateContainerByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.ContainerSummary, error)
	ActivateContainerByName(ctx context.Context, name string, priority OwnerPriority, actor, principal *models.Owner) (*models.ContainerSummary, error)
	FindActiveContainer(ctx context.Context, actor *models.Owner) (*models.ContainerSummary, error)

	// AddItem, DropItem and ModifyItem return the updated summary plus a
	// human-readable outcome message.
	AddItem(ctx context.Context, req *AddItemRequest, actor, principal *models.Owner) (*models.ContainerSummary, string, error)
	DropItem(ctx context.Context, req *DropItemRequest, actor *models.Owner) (*models.ContainerSummary, string, error)
	ModifyItem(ctx context.Context, req *ModifyItemRequest, actor *models.Owner) (*models.ContainerSummary, string, error)

	AutocompleteItems(ctx context.Context, prefix string, actor *models.Owner) ([]models.AutoComplete, error)
	AutocompleteParentItems(ctx context.Context, prefix string, actor *models.Owner) ([]models.AutoComplete, error)
}
