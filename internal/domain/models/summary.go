package models

import "time"

// ContainerSummary is the presentation shape for a container and its
// nested item tree. Returned by every container read and mutation.
type ContainerSummary struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Description  *string                `json:"description,omitempty"`
	Kind         *string                `json:"kind,omitempty"`
	OwnerName    string                 `json:"owner_name"`
	OwnerType    OwnerType              `json:"owner_type"`
	Active       bool                   `json:"active"`
	LastActiveAt time.Time              `json:"last_active_at"`
	Items        []ContainerItemSummary `json:"items"`
}

// ContainerItemSummary is one placed item in a summary, with its full
// path name and nested children.
type ContainerItemSummary struct {
	ID       int64                  `json:"id"`
	ItemID   int64                  `json:"item_id"`
	Name     string                 `json:"name"`
	Quantity int                    `json:"quantity"`
	Note     *string                `json:"note,omitempty"`
	Children []ContainerItemSummary `json:"children,omitempty"`
	Modified time.Time              `json:"last_modified"`
}

// AutoComplete is one suggestion row for a typeahead surface.
type AutoComplete struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// DeletedEntity describes a resource that was just removed.
type DeletedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Summarize renders a container and its tree into the presentation
// shape. userContext supplies the active flag; it may be nil for guild
// or system callers.
func Summarize(c *Container, tree *Tree, userContext *Owner) *ContainerSummary {
	s := &ContainerSummary{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Kind:         c.Kind,
		LastActiveAt: c.LastActiveAt,
		Items:        summarizeLevel(tree, tree.Roots()),
	}
	if c.Owner != nil {
		s.OwnerName = c.Owner.DisplayName()
		s.OwnerType = c.Owner.Type
	}
	if userContext != nil && userContext.PrimaryContainerID != nil {
		s.Active = *userContext.PrimaryContainerID == c.ID
	}
	return s
}

func summarizeLevel(tree *Tree, nodes []*ContainerItem) []ContainerItemSummary {
	out := make([]ContainerItemSummary, 0, len(nodes))
	for _, ci := range nodes {
		out = append(out, ContainerItemSummary{
			ID:       ci.ID,
			ItemID:   ci.ItemID,
			Name:     tree.Path(ci.ID),
			Quantity: ci.Quantity,
			Note:     ci.Note,
			Children: summarizeLevel(tree, tree.Children(ci.ID)),
			Modified: ci.UpdatedAt,
		})
	}
	return out
}
