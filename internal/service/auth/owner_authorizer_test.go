package auth

import (
	"testing"

	"holding/internal/domain/models"
)

func TestCanMutate_DirectOwner(t *testing.T) {
	authorizer := NewOwnerAuthorizer()

	user := &models.Owner{ID: 1, Type: models.OwnerTypeUser}

	if !authorizer.CanMutate(user, user, user) {
		t.Error("expected direct owner to be allowed to mutate")
	}
}

func TestCanMutate_GuildPrincipal(t *testing.T) {
	authorizer := NewOwnerAuthorizer()

	actor := &models.Owner{ID: 1, Type: models.OwnerTypeUser}
	guild := &models.Owner{ID: 2, Type: models.OwnerTypeGuild}

	// Acting inside the guild context: allowed.
	if !authorizer.CanMutate(guild, actor, guild) {
		t.Error("expected guild-owned resource to be mutable within the guild context")
	}

	// Acting outside the guild context: denied.
	if authorizer.CanMutate(guild, actor, actor) {
		t.Error("expected guild-owned resource to be denied outside the guild context")
	}
}

func TestCanMutate_OtherUserDenied(t *testing.T) {
	authorizer := NewOwnerAuthorizer()

	actor := &models.Owner{ID: 1, Type: models.OwnerTypeUser}
	other := &models.Owner{ID: 2, Type: models.OwnerTypeUser}

	if authorizer.CanMutate(other, actor, actor) {
		t.Error("expected another user's resource to be denied")
	}
	// Even when the other user is the principal: user-owned resources are
	// only mutable by their owner.
	if authorizer.CanMutate(other, actor, other) {
		t.Error("expected user-owned resource to be denied to a non-owner actor")
	}
}

func TestCanView_SystemOwnedVisibleToAll(t *testing.T) {
	authorizer := NewOwnerAuthorizer()

	actor := &models.Owner{ID: 1, Type: models.OwnerTypeUser}
	system := &models.Owner{ID: 99, Type: models.OwnerTypeSystem}

	if !authorizer.CanView(system, actor, actor) {
		t.Error("expected system-owned resource to be visible to everyone")
	}
	if authorizer.CanMutate(system, actor, actor) {
		t.Error("expected system-owned resource to not be mutable by a user")
	}
}

func TestCanView_NilIdentitiesDenied(t *testing.T) {
	authorizer := NewOwnerAuthorizer()

	user := &models.Owner{ID: 1, Type: models.OwnerTypeUser}

	if authorizer.CanView(nil, user, user) || authorizer.CanView(user, nil, user) || authorizer.CanView(user, user, nil) {
		t.Error("expected nil identities to be denied")
	}
}
