package repositories

import (
	"context"
	"time"

	"holding/internal/domain/models"
)

// ContainerRepository defines data access for containers.
type ContainerRepository interface {
	// Create inserts a new container and assigns its ID
	Create(ctx context.Context, container *models.Container) error

	// GetByID retrieves a container with its owner joined
	GetByID(ctx context.Context, id int64) (*models.Container, error)

	// GetByOwnerAndName retrieves a container by its unique (owner, name)
	// pair; the name comparison is exact
	GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*models.Container, error)

	// ExistsByOwnerAndName reports whether the (owner, name) pair is taken
	ExistsByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error)

	// GetActiveForUser retrieves the user's primary container with its
	// owner joined
	GetActiveForUser(ctx context.Context, userID int64) (*models.Container, error)

	// ListForOwners lists containers owned by any of the given owners,
	// optionally filtered by exact name, most recently active first
	ListForOwners(ctx context.Context, name *string, ownerIDs []int64, limit int) ([]models.Container, error)

	// SearchForOwners lists containers owned by any of the given owners
	// whose name starts with prefix, most recently active first
	SearchForOwners(ctx context.Context, prefix string, ownerIDs []int64, limit int) ([]models.Container, error)

	// Lock acquires a row lock on the container for the duration of the
	// surrounding transaction. Mutations to a container's tree serialize
	// through this lock.
	Lock(ctx context.Context, id int64) error

	// Touch stamps the container's last-active time
	Touch(ctx context.Context, id int64, at time.Time) error

	// Delete removes a container; its placed items go with it
	Delete(ctx context.Context, id int64) error
}

// ContainerItemRepository defines data access for placed items.
type ContainerItemRepository interface {
	// ListByContainer retrieves every placed item in a container with its
	// catalog item joined, oldest first
	ListByContainer(ctx context.Context, containerID int64) ([]*models.ContainerItem, error)

	// Insert creates a placed item and assigns its ID
	Insert(ctx context.Context, ci *models.ContainerItem) error

	// Update persists quantity, note and parent changes
	Update(ctx context.Context, ci *models.ContainerItem) error

	// Delete removes placed items by ID
	Delete(ctx context.Context, ids ...int64) error
}
