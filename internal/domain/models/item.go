package models

import "time"

// Item is a catalog entry. Items are immutable to the placement engine;
// a ContainerItem references exactly one of these.
type Item struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`

	Weight     *float64 `json:"weight,omitempty" db:"weight"`
	WeightUnit *string  `json:"weight_unit,omitempty" db:"weight_unit"`
	Value      *float64 `json:"value,omitempty" db:"value"`
	ValueUnit  *string  `json:"value_unit,omitempty" db:"value_unit"`

	// Containable items may hold other placed items. Each placed instance
	// is its own node with quantity 1. Non-containable items stack.
	Containable bool `json:"containable" db:"is_parent"`

	// CreatedByID scopes visibility: system-owned items are visible to
	// everyone, user/guild-owned items only within their owner's scope.
	CreatedByID int64 `json:"created_by_id" db:"created_by_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
