package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
	"holding/internal/domain/services"
)

// memState is the shared in-memory store behind the fake repositories.
type memState struct {
	nextID     int64
	owners     map[int64]*models.Owner
	containers map[int64]*models.Container
	placed     map[int64]*models.ContainerItem
	items      map[int64]*models.Item
}

func newMemState() *memState {
	return &memState{
		owners:     make(map[int64]*models.Owner),
		containers: make(map[int64]*models.Container),
		placed:     make(map[int64]*models.ContainerItem),
		items:      make(map[int64]*models.Item),
	}
}

func (st *memState) id() int64 {
	st.nextID++
	return st.nextID
}

func (st *memState) addOwner(o *models.Owner) *models.Owner {
	o.ID = st.id()
	st.owners[o.ID] = o
	return o
}

func (st *memState) addItem(i *models.Item) *models.Item {
	i.ID = st.id()
	st.items[i.ID] = i
	return i
}

type fakeOwnerRepo struct{ st *memState }

func (r *fakeOwnerRepo) GetByID(ctx context.Context, id int64) (*models.Owner, error) {
	o, ok := r.st.owners[id]
	if !ok {
		return nil, fmt.Errorf("owner %d: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

func (r *fakeOwnerRepo) GetByExternalID(ctx context.Context, externalID int64) (*models.Owner, error) {
	for _, o := range r.st.owners {
		if o.ExternalID == externalID {
			return o, nil
		}
	}
	return nil, fmt.Errorf("owner external %d: %w", externalID, domain.ErrNotFound)
}

func (r *fakeOwnerRepo) Create(ctx context.Context, owner *models.Owner) error {
	r.st.addOwner(owner)
	return nil
}

func (r *fakeOwnerRepo) UpdateUser(ctx context.Context, owner *models.Owner) error {
	r.st.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepo) SetPrimaryContainer(ctx context.Context, userID int64, containerID *int64) error {
	o, ok := r.st.owners[userID]
	if !ok {
		return fmt.Errorf("owner %d: %w", userID, domain.ErrNotFound)
	}
	o.PrimaryContainerID = containerID
	return nil
}

type fakeContainerRepo struct{ st *memState }

func (r *fakeContainerRepo) Create(ctx context.Context, c *models.Container) error {
	c.ID = r.st.id()
	now := time.Now()
	c.LastActiveAt = now
	c.CreatedAt = now
	c.UpdatedAt = now
	r.st.containers[c.ID] = c
	return nil
}

func (r *fakeContainerRepo) GetByID(ctx context.Context, id int64) (*models.Container, error) {
	c, ok := r.st.containers[id]
	if !ok {
		return nil, fmt.Errorf("container %d: %w", id, domain.ErrNotFound)
	}
	c.Owner = r.st.owners[c.OwnerID]
	return c, nil
}

func (r *fakeContainerRepo) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Container, error) {
	for _, c := range r.st.containers {
		if c.OwnerID == ownerID && c.Name == name {
			c.Owner = r.st.owners[c.OwnerID]
			return c, nil
		}
	}
	return nil, fmt.Errorf("container %q: %w", name, domain.ErrNotFound)
}

func (r *fakeContainerRepo) ExistsByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error) {
	for _, c := range r.st.containers {
		if c.OwnerID == ownerID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContainerRepo) GetActiveForUser(ctx context.Context, userID int64) (*models.Container, error) {
	o, ok := r.st.owners[userID]
	if !ok || o.PrimaryContainerID == nil {
		return nil, fmt.Errorf("no active container: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, *o.PrimaryContainerID)
}

func (r *fakeContainerRepo) ListForOwners(ctx context.Context, name *string, ownerIDs []int64, limit int) ([]models.Container, error) {
	var out []models.Container
	for _, c := range r.st.containers {
		if !containsID(ownerIDs, c.OwnerID) {
			continue
		}
		if name != nil && !strings.EqualFold(c.Name, *name) {
			continue
		}
		c.Owner = r.st.owners[c.OwnerID]
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeContainerRepo) SearchForOwners(ctx context.Context, prefix string, ownerIDs []int64, limit int) ([]models.Container, error) {
	var out []models.Container
	for _, c := range r.st.containers {
		if !containsID(ownerIDs, c.OwnerID) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix)) {
			continue
		}
		c.Owner = r.st.owners[c.OwnerID]
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeContainerRepo) Lock(ctx context.Context, id int64) error { return nil }

func (r *fakeContainerRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	if c, ok := r.st.containers[id]; ok {
		c.LastActiveAt = at
	}
	return nil
}

func (r *fakeContainerRepo) Delete(ctx context.Context, id int64) error {
	delete(r.st.containers, id)
	for pid, ci := range r.st.placed {
		if ci.ContainerID == id {
			delete(r.st.placed, pid)
		}
	}
	return nil
}

type fakePlacedRepo struct{ st *memState }

func (r *fakePlacedRepo) ListByContainer(ctx context.Context, containerID int64) ([]*models.ContainerItem, error) {
	var out []*models.ContainerItem
	for _, ci := range r.st.placed {
		if ci.ContainerID == containerID {
			ci.Item = r.st.items[ci.ItemID]
			out = append(out, ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlacedRepo) Insert(ctx context.Context, ci *models.ContainerItem) error {
	ci.ID = r.st.id()
	now := time.Now()
	ci.CreatedAt = now
	ci.UpdatedAt = now
	r.st.placed[ci.ID] = ci
	return nil
}

func (r *fakePlacedRepo) Update(ctx context.Context, ci *models.ContainerItem) error {
	if _, ok := r.st.placed[ci.ID]; !ok {
		return fmt.Errorf("placed item %d: %w", ci.ID, domain.ErrNotFound)
	}
	ci.UpdatedAt = time.Now()
	r.st.placed[ci.ID] = ci
	return nil
}

func (r *fakePlacedRepo) Delete(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		delete(r.st.placed, id)
	}
	return nil
}

// fakeCatalog mirrors the catalog service's tiered name resolution over
// the in-memory item set.
type fakeCatalog struct{ st *memState }

func (c *fakeCatalog) FindItemByID(ctx context.Context, id int64, actor, principal *models.Owner) (*models.Item, error) {
	item, ok := c.st.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

func (c *fakeCatalog) ResolveItem(ctx context.Context, name string, actor, principal *models.Owner) (*models.Item, error) {
	tier := func(i *models.Item) int {
		switch i.CreatedByID {
		case actor.ID:
			return 1
		case principal.ID:
			return 2
		default:
			return 3
		}
	}

	var matches []*models.Item
	for _, i := range c.st.items {
		if strings.EqualFold(i.Name, name) {
			matches = append(matches, i)
		}
	}
	sort.Slice(matches, func(a, b int) bool {
		if tier(matches[a]) != tier(matches[b]) {
			return tier(matches[a]) < tier(matches[b])
		}
		return matches[a].ID < matches[b].ID
	})

	if len(matches) == 0 {
		return nil, fmt.Errorf("item %q: %w", name, domain.ErrNotFound)
	}
	if len(matches) > 1 && tier(matches[0]) == tier(matches[1]) {
		candidates := make([]domain.Candidate, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, domain.Candidate{ID: m.ID, Label: m.Name})
		}
		return nil, domain.NewAmbiguousError(name, candidates)
	}
	return matches[0], nil
}

func (c *fakeCatalog) FindItems(ctx context.Context, name string, actor, principal *models.Owner) ([]models.Item, error) {
	var out []models.Item
	for _, i := range c.st.items {
		if strings.EqualFold(i.Name, name) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (c *fakeCatalog) AutocompleteItems(ctx context.Context, fragment string, actor, principal *models.Owner) ([]models.AutoComplete, error) {
	var out []models.AutoComplete
	for _, i := range c.st.items {
		if strings.Contains(strings.ToLower(i.Name), strings.ToLower(fragment)) {
			out = append(out, models.AutoComplete{ID: i.ID, Label: i.Name})
		}
	}
	return out, nil
}

// fakeTxManager runs the function directly; the fakes have no
// transactional state to roll back.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var _ repositories.OwnerRepository = (*fakeOwnerRepo)(nil)
var _ repositories.ContainerRepository = (*fakeContainerRepo)(nil)
var _ repositories.ContainerItemRepository = (*fakePlacedRepo)(nil)
var _ services.ItemService = (*fakeCatalog)(nil)
