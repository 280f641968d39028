package models

import (
	"errors"
	"testing"

	"holding/internal/domain"
)

func containableItem(id int64, name string) *Item {
	return &Item{ID: id, Name: name, Containable: true}
}

func plainItem(id int64, name string) *Item {
	return &Item{ID: id, Name: name}
}

func node(id, itemID int64, item *Item, parentID *int64, qty int) *ContainerItem {
	return &ContainerItem{ID: id, ContainerID: 1, ItemID: itemID, Item: item, ParentID: parentID, Quantity: qty}
}

func ptr(v int64) *int64 { return &v }

// backpack(1) > pouch(2) > potion(3), torch(4) at root
func sampleTree() *Tree {
	backpack := containableItem(10, "Backpack")
	pouch := containableItem(11, "Pouch")
	potion := plainItem(12, "Potion")
	torch := plainItem(13, "Torch")

	return NewTree(1, []*ContainerItem{
		node(1, 10, backpack, nil, 1),
		node(2, 11, pouch, ptr(1), 1),
		node(3, 12, potion, ptr(2), 3),
		node(4, 13, torch, nil, 5),
	})
}

func TestPath_WalksRootToNode(t *testing.T) {
	tree := sampleTree()

	got := tree.Path(3)
	want := "Backpack > Pouch > Potion"
	if got != want {
		t.Errorf("expected path %q, got %q", want, got)
	}

	if got := tree.Path(4); got != "Torch" {
		t.Errorf("expected root node path 'Torch', got %q", got)
	}
}

func TestPath_CorruptedParentChainTerminates(t *testing.T) {
	a := node(1, 10, containableItem(10, "A"), ptr(2), 1)
	b := node(2, 11, containableItem(11, "B"), ptr(1), 1)
	tree := NewTree(1, []*ContainerItem{a, b})

	// A cycle in the stored parent links must not hang the walk
	got := tree.Path(1)
	if got == "" {
		t.Fatal("expected a non-empty path for a cyclic chain")
	}
}

func TestPath_MissingItemUsesPlaceholder(t *testing.T) {
	tree := NewTree(1, []*ContainerItem{node(1, 10, nil, nil, 1)})
	if got := tree.Path(1); got != "Unnamed Item" {
		t.Errorf("expected placeholder name, got %q", got)
	}
}

func TestFindByPath_CaseInsensitive(t *testing.T) {
	tree := sampleTree()

	matches := tree.FindByPath("backpack > pouch > POTION")
	if len(matches) != 1 || matches[0].ID != 3 {
		t.Fatalf("expected to find node 3, got %v", matches)
	}

	if matches := tree.FindByPath("Pouch"); len(matches) != 0 {
		t.Errorf("bare segment should not match a nested node, got %v", matches)
	}
}

func TestFindByPath_ReturnsAllMatches(t *testing.T) {
	backpack := containableItem(10, "Backpack")
	tree := NewTree(1, []*ContainerItem{
		node(1, 10, backpack, nil, 1),
		node(2, 10, backpack, nil, 1),
	})

	if matches := tree.FindByPath("Backpack"); len(matches) != 2 {
		t.Errorf("expected 2 matches for duplicate placements, got %d", len(matches))
	}
}

func TestFindStack_MatchesItemAndParent(t *testing.T) {
	tree := sampleTree()

	if got := tree.FindStack(12, ptr(2)); got == nil || got.ID != 3 {
		t.Fatalf("expected stack node 3, got %v", got)
	}
	// Same item under a different parent is a different stack
	if got := tree.FindStack(12, ptr(1)); got != nil {
		t.Errorf("expected no stack under the backpack, got node %d", got.ID)
	}
	if got := tree.FindStack(13, nil); got == nil || got.ID != 4 {
		t.Fatalf("expected root stack node 4, got %v", got)
	}
	if got := tree.FindStack(13, ptr(1)); got != nil {
		t.Errorf("root stack must not match a parented lookup")
	}
}

func TestDescendants_FullSubtree(t *testing.T) {
	tree := sampleTree()

	desc := tree.Descendants(1)
	if len(desc) != 2 {
		t.Fatalf("expected 2 descendants of the backpack, got %d", len(desc))
	}
	if desc[0].ID != 2 || desc[1].ID != 3 {
		t.Errorf("expected descendants [2 3], got [%d %d]", desc[0].ID, desc[1].ID)
	}
}

func TestRemove_DetachesNodeOnly(t *testing.T) {
	tree := sampleTree()
	tree.Remove(2)

	if _, ok := tree.Get(2); ok {
		t.Fatal("removed node still present")
	}
	if tree.Len() != 3 {
		t.Errorf("expected 3 nodes after removal, got %d", tree.Len())
	}
	// The orphaned child keeps its dangling parent reference; Path stops
	// at the break
	if got := tree.Path(3); got != "Potion" {
		t.Errorf("expected orphan path 'Potion', got %q", got)
	}
}

func TestValidateParent_RejectsNonContainable(t *testing.T) {
	tree := sampleTree()
	torch, _ := tree.Get(4)
	potion, _ := tree.Get(3)

	err := tree.ValidateParent(potion, torch)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateParent_RejectsSelf(t *testing.T) {
	tree := sampleTree()
	backpack, _ := tree.Get(1)

	if err := tree.ValidateParent(backpack, backpack); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for self-parent, got %v", err)
	}
}

func TestValidateParent_RejectsDescendantCycle(t *testing.T) {
	tree := sampleTree()
	backpack, _ := tree.Get(1)
	pouch, _ := tree.Get(2)

	// Moving the backpack into its own pouch would orbit the subtree
	if err := tree.ValidateParent(backpack, pouch); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for cycle, got %v", err)
	}
}

func TestValidateParent_AllowsValidMove(t *testing.T) {
	tree := sampleTree()
	backpack, _ := tree.Get(1)
	torch, _ := tree.Get(4)

	if err := tree.ValidateParent(torch, backpack); err != nil {
		t.Fatalf("expected valid move, got %v", err)
	}

	// Brand-new placements validate with a nil child
	if err := tree.ValidateParent(nil, backpack); err != nil {
		t.Fatalf("expected valid new placement, got %v", err)
	}
}
