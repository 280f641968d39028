package services

import "holding/internal/domain/models"

// ResourceAuthorizer decides visibility and mutation rights from the
// identities alone: the resource's owner, the actor making the request,
// and the principal whose context the request runs in. Implementations
// are pure functions of the three identities.
type ResourceAuthorizer interface {
	// CanView reports whether the actor/principal pair may read a
	// resource held by resourceOwner
	CanView(resourceOwner, actor, principal *models.Owner) bool

	// CanMutate reports whether the actor/principal pair may change a
	// resource held by resourceOwner
	CanMutate(resourceOwner, actor, principal *models.Owner) bool
}
