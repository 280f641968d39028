package models

import (
	"fmt"
	"strings"

	"holding/internal/domain"
)

// PathSeparator joins ancestor item names into a display path,
// e.g. "Backpack > Pouch > Potion".
const PathSeparator = " > "

// Tree is the arena for one container's placed items. Nodes are held in a
// flat map keyed by ContainerItem ID with parent links as ID references,
// so cycle detection is a plain ID-chain walk and no node owns another.
type Tree struct {
	ContainerID int64

	nodes map[int64]*ContainerItem
	order []int64
}

// NewTree builds a tree over the given nodes. Nodes whose parent does not
// resolve within the same container are treated as root-placed.
func NewTree(containerID int64, items []*ContainerItem) *Tree {
	t := &Tree{
		ContainerID: containerID,
		nodes:       make(map[int64]*ContainerItem, len(items)),
		order:       make([]int64, 0, len(items)),
	}
	for _, ci := range items {
		t.Add(ci)
	}
	return t
}

// Add inserts a node into the arena.
func (t *Tree) Add(ci *ContainerItem) {
	if _, exists := t.nodes[ci.ID]; !exists {
		t.order = append(t.order, ci.ID)
	}
	t.nodes[ci.ID] = ci
}

// Remove deletes a node from the arena. It does not touch children;
// callers decide whether to detach or cascade first.
func (t *Tree) Remove(id int64) {
	delete(t.nodes, id)
	for i, nid := range t.order {
		if nid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Get returns the node with the given ID.
func (t *Tree) Get(id int64) (*ContainerItem, bool) {
	ci, ok := t.nodes[id]
	return ci, ok
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// All returns every node in insertion order.
func (t *Tree) All() []*ContainerItem {
	out := make([]*ContainerItem, 0, len(t.order))
	for _, id := range t.order {
		if ci, ok := t.nodes[id]; ok {
			out = append(out, ci)
		}
	}
	return out
}

// Roots returns the nodes placed directly at the container root.
func (t *Tree) Roots() []*ContainerItem {
	var out []*ContainerItem
	for _, ci := range t.All() {
		if ci.ParentID == nil {
			out = append(out, ci)
		}
	}
	return out
}

// Children returns the direct children of the given node.
func (t *Tree) Children(id int64) []*ContainerItem {
	var out []*ContainerItem
	for _, ci := range t.All() {
		if ci.ParentID != nil && *ci.ParentID == id {
			out = append(out, ci)
		}
	}
	return out
}

// Descendants returns the full subtree below the given node, not
// including the node itself.
func (t *Tree) Descendants(id int64) []*ContainerItem {
	var out []*ContainerItem
	for _, child := range t.Children(id) {
		out = append(out, child)
		out = append(out, t.Descendants(child.ID)...)
	}
	return out
}

// Path builds the display name of a node by walking the parent chain from
// root to node. The walk is bounded by the arena size so a corrupted
// parent chain cannot loop forever.
func (t *Tree) Path(id int64) string {
	names := make([]string, 0, 4)
	seen := make(map[int64]bool)
	cur, ok := t.nodes[id]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		name := "Unnamed Item"
		if cur.Item != nil {
			name = cur.Item.Name
		}
		names = append(names, name)
		if cur.ParentID == nil {
			break
		}
		cur, ok = t.nodes[*cur.ParentID]
	}
	// Reverse: collected node-to-root, display root-to-node.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// FindByPath returns every node whose full path matches name
// case-insensitively.
func (t *Tree) FindByPath(name string) []*ContainerItem {
	var out []*ContainerItem
	for _, ci := range t.All() {
		if strings.EqualFold(t.Path(ci.ID), name) {
			out = append(out, ci)
		}
	}
	return out
}

// FindStack returns the existing stack for a stackable item at the given
// location, or nil. Identical item+parent is always a single node.
func (t *Tree) FindStack(itemID int64, parentID *int64) *ContainerItem {
	for _, ci := range t.All() {
		if ci.ItemID != itemID {
			continue
		}
		if (ci.ParentID == nil) != (parentID == nil) {
			continue
		}
		if ci.ParentID == nil || *ci.ParentID == *parentID {
			return ci
		}
	}
	return nil
}

// ValidateParent checks the containment rules before placing child under
// parent. child is nil when validating a brand-new placement.
//
// Rules: the parent's item must be containable, a node cannot be its own
// parent, and the move must not create a cycle (the parent chain above
// the new parent must not pass through the child).
func (t *Tree) ValidateParent(child, parent *ContainerItem) error {
	if parent.Item != nil && !parent.Item.Containable {
		return fmt.Errorf("item %q cannot contain other items: %w", t.Path(parent.ID), domain.ErrValidation)
	}
	if child != nil && child.ID == parent.ID {
		return fmt.Errorf("an item cannot be its own parent: %w", domain.ErrValidation)
	}
	if child != nil {
		seen := make(map[int64]bool)
		cur := parent
		for cur != nil && !seen[cur.ID] {
			seen[cur.ID] = true
			if cur.ID == child.ID {
				return fmt.Errorf("cannot move an item into its own descendants: %w", domain.ErrValidation)
			}
			if cur.ParentID == nil {
				break
			}
			cur, _ = t.nodes[*cur.ParentID]
		}
	}
	return nil
}
