package models

import "time"

// Container is a named, owned collection forming the root of an
// item-placement tree. (owner_id, name) is unique per owner.
type Container struct {
	ID          int64   `json:"id" db:"id"`
	OwnerID     int64   `json:"owner_id" db:"owner_id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Kind        *string `json:"kind,omitempty" db:"kind"`

	LastActiveAt time.Time `json:"last_active_at" db:"last_active_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Owner is the joined owner row, populated by repository reads.
	Owner *Owner `json:"-"`
}

// ContainerItem is one placed instance or stack of a catalog item inside
// a container, optionally nested under another ContainerItem in the same
// container. Parent and children are expressed as ID references; the Tree
// type resolves them.
type ContainerItem struct {
	ID          int64   `json:"id" db:"id"`
	ContainerID int64   `json:"container_id" db:"container_id"`
	ItemID      int64   `json:"item_id" db:"item_id"`
	Quantity    int     `json:"quantity" db:"quantity"`
	Note        *string `json:"note,omitempty" db:"note"`
	ParentID    *int64  `json:"parent_id,omitempty" db:"parent_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Item is the joined catalog row, populated by repository reads.
	Item *Item `json:"-"`
}
