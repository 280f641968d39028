package auth

import (
	"holding/internal/domain/models"
	"holding/internal/domain/services"
)

// ownerAuthorizer applies the ownership rules, first match wins:
//  1. the actor is the direct owner of the resource
//  2. the resource is guild-owned and the principal is that guild
//     (the caller was already authorized for the guild context)
//  3. otherwise denied
type ownerAuthorizer struct{}

// NewOwnerAuthorizer creates the resource authorizer
func NewOwnerAuthorizer() services.ResourceAuthorizer {
	return &ownerAuthorizer{}
}

// CanView reports whether the actor/principal pair may read a resource
// held by resourceOwner. System-owned resources are globally visible.
func (a *ownerAuthorizer) CanView(resourceOwner, actor, principal *models.Owner) bool {
	if resourceOwner == nil || actor == nil || principal == nil {
		return false
	}
	if resourceOwner.Type == models.OwnerTypeSystem {
		return true
	}
	return a.CanMutate(resourceOwner, actor, principal)
}

// CanMutate reports whether the actor/principal pair may change a
// resource held by resourceOwner.
func (a *ownerAuthorizer) CanMutate(resourceOwner, actor, principal *models.Owner) bool {
	if resourceOwner == nil || actor == nil || principal == nil {
		return false
	}
	if resourceOwner.ID == actor.ID {
		return true
	}
	return resourceOwner.Type == models.OwnerTypeGuild && resourceOwner.ID == principal.ID
}
