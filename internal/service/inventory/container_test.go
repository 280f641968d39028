package inventory

import (
	"context"
	"errors"
	"testing"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/services"
)

func TestCreateContainer_FirstBecomesPrimary(t *testing.T) {
	f := newFixture(t)
	// Start from a user with no containers
	f.actor.PrimaryContainerID = nil
	delete(f.st.containers, f.crate.ID)

	summary, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Satchel"}, f.actor, f.actor)
	if err != nil {
		t.Fatalf("CreateContainer failed: %v", err)
	}
	if !summary.Active {
		t.Error("expected the first container to become active")
	}
	if f.actor.PrimaryContainerID == nil || *f.actor.PrimaryContainerID != summary.ID {
		t.Errorf("expected primary container %d, got %v", summary.ID, f.actor.PrimaryContainerID)
	}
}

func TestCreateContainer_SecondStaysInactiveWithoutFlag(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Satchel"}, f.actor, f.actor)
	if err != nil {
		t.Fatalf("CreateContainer failed: %v", err)
	}
	if summary.Active {
		t.Error("expected the second container to stay inactive")
	}
	if *f.actor.PrimaryContainerID != f.crate.ID {
		t.Errorf("expected primary to remain %d", f.crate.ID)
	}
}

func TestCreateContainer_ActiveFlagSwitchesPrimary(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Satchel", Active: true}, f.actor, f.actor)
	if err != nil {
		t.Fatalf("CreateContainer failed: %v", err)
	}
	if !summary.Active {
		t.Error("expected the new container to be active")
	}
	if *f.actor.PrimaryContainerID != summary.ID {
		t.Errorf("expected primary switched to %d", summary.ID)
	}
}

func TestCreateContainer_DuplicateNameConflicts(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Crate"}, f.actor, f.actor)

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateContainer_GuildPrincipalDoesNotActivate(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Guild Vault", Active: true}, f.actor, f.guild)
	if err != nil {
		t.Fatalf("CreateContainer failed: %v", err)
	}
	if summary.OwnerType != models.OwnerTypeGuild {
		t.Errorf("expected guild-owned container, got %s", summary.OwnerType)
	}
	if *f.actor.PrimaryContainerID != f.crate.ID {
		t.Errorf("guild creation must not repoint the actor's primary")
	}
}

func TestCreateContainer_BlankNameRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "   "}, f.actor, f.actor)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteContainer_NameConfirmationMismatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DeleteContainer(context.Background(), f.crate.ID, "Wrong Name", f.actor, f.actor)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := f.st.containers[f.crate.ID]; !ok {
		t.Error("container must survive a failed confirmation")
	}
}

func TestDeleteContainer_CaseInsensitiveConfirmation(t *testing.T) {
	f := newFixture(t)

	deleted, err := f.svc.DeleteContainer(context.Background(), f.crate.ID, "cRaTe", f.actor, f.actor)
	if err != nil {
		t.Fatalf("DeleteContainer failed: %v", err)
	}
	if deleted.Name != "Crate" || deleted.Type != "Container" {
		t.Errorf("unexpected deleted entity %+v", deleted)
	}
	if f.actor.PrimaryContainerID != nil {
		t.Error("expected primary cleared when deleting the active container")
	}
	if _, ok := f.st.containers[f.crate.ID]; ok {
		t.Error("container row still present")
	}
}

func TestDeleteContainer_OtherUsersContainerForbidden(t *testing.T) {
	f := newFixture(t)
	other := f.st.addOwner(&models.Owner{ExternalID: 300, Type: models.OwnerTypeUser, UserName: "vex"})

	_, err := f.svc.DeleteContainer(context.Background(), f.crate.ID, "Crate", other, other)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteContainer_GuildContainerInGuildContext(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Vault"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault

	if _, err := f.svc.DeleteContainer(context.Background(), vault.ID, "Vault", f.actor, f.guild); err != nil {
		t.Fatalf("expected guild-context delete to succeed, got %v", err)
	}

	// Outside the guild context the same actor is denied
	vault2 := &models.Container{OwnerID: f.guild.ID, Name: "Vault"}
	vault2.ID = f.st.id()
	f.st.containers[vault2.ID] = vault2
	if _, err := f.svc.DeleteContainer(context.Background(), vault2.ID, "Vault", f.actor, f.actor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden outside guild context, got %v", err)
	}
}

func TestActivateContainerByID(t *testing.T) {
	f := newFixture(t)
	satchel, err := f.svc.CreateContainer(context.Background(), &services.CreateContainerRequest{Name: "Satchel"}, f.actor, f.actor)
	if err != nil {
		t.Fatalf("CreateContainer failed: %v", err)
	}

	summary, err := f.svc.ActivateContainerByID(context.Background(), satchel.ID, f.actor, f.actor)
	if err != nil {
		t.Fatalf("ActivateContainerByID failed: %v", err)
	}
	if !summary.Active {
		t.Error("expected activated container to report active")
	}
	if *f.actor.PrimaryContainerID != satchel.ID {
		t.Errorf("expected primary %d, got %v", satchel.ID, f.actor.PrimaryContainerID)
	}
}

func TestActivateContainerByName_UserPriorityDefault(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Stash"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault
	mine := &models.Container{OwnerID: f.actor.ID, Name: "Stash"}
	mine.ID = f.st.id()
	f.st.containers[mine.ID] = mine

	summary, err := f.svc.ActivateContainerByName(context.Background(), "Stash", services.OwnerPriorityUser, f.actor, f.guild)
	if err != nil {
		t.Fatalf("ActivateContainerByName failed: %v", err)
	}
	if summary.ID != mine.ID {
		t.Errorf("expected the user's container %d, got %d", mine.ID, summary.ID)
	}
}

func TestActivateContainerByName_GuildPriority(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Stash"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault
	mine := &models.Container{OwnerID: f.actor.ID, Name: "Stash"}
	mine.ID = f.st.id()
	f.st.containers[mine.ID] = mine

	summary, err := f.svc.ActivateContainerByName(context.Background(), "Stash", services.OwnerPriorityGuild, f.actor, f.guild)
	if err != nil {
		t.Fatalf("ActivateContainerByName failed: %v", err)
	}
	if summary.ID != vault.ID {
		t.Errorf("expected the guild's container %d, got %d", vault.ID, summary.ID)
	}
	// Activation always repoints the user's primary, even at a guild container
	if *f.actor.PrimaryContainerID != vault.ID {
		t.Errorf("expected primary %d, got %v", vault.ID, f.actor.PrimaryContainerID)
	}
}

func TestActivateContainerByName_FallsBackAcrossOwners(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Stash"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault

	// User priority requested but only the guild owns the name
	summary, err := f.svc.ActivateContainerByName(context.Background(), "Stash", services.OwnerPriorityUser, f.actor, f.guild)
	if err != nil {
		t.Fatalf("ActivateContainerByName failed: %v", err)
	}
	if summary.ID != vault.ID {
		t.Errorf("expected fallback to guild container %d, got %d", vault.ID, summary.ID)
	}
}

func TestActivateContainerByName_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ActivateContainerByName(context.Background(), "Nowhere", services.OwnerPriorityUser, f.actor, f.actor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestActivateContainer_GuildActorRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ActivateContainerByID(context.Background(), f.crate.ID, f.guild, f.guild)
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestFindActiveContainer_NoneSet(t *testing.T) {
	f := newFixture(t)
	f.actor.PrimaryContainerID = nil

	_, err := f.svc.FindActiveContainer(context.Background(), f.actor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindContainerByID_OutOfScopeHidden(t *testing.T) {
	f := newFixture(t)
	other := f.st.addOwner(&models.Owner{ExternalID: 300, Type: models.OwnerTypeUser, UserName: "vex"})
	theirs := &models.Container{OwnerID: other.ID, Name: "Secret"}
	theirs.ID = f.st.id()
	f.st.containers[theirs.ID] = theirs

	_, err := f.svc.FindContainerByID(context.Background(), theirs.ID, f.actor, f.actor)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected hidden container to read as not found, got %v", err)
	}
}

func TestFindContainers_ScopedToActorAndPrincipal(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Vault"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault
	other := f.st.addOwner(&models.Owner{ExternalID: 300, Type: models.OwnerTypeUser, UserName: "vex"})
	theirs := &models.Container{OwnerID: other.ID, Name: "Secret"}
	theirs.ID = f.st.id()
	f.st.containers[theirs.ID] = theirs

	summaries, err := f.svc.FindContainers(context.Background(), "", f.actor, f.guild)
	if err != nil {
		t.Fatalf("FindContainers failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected crate and vault only, got %d containers", len(summaries))
	}
	for _, s := range summaries {
		if s.Name == "Secret" {
			t.Error("foreign container leaked into the listing")
		}
	}
}

func TestAutocompleteContainers_PrefixAndOwnerLabel(t *testing.T) {
	f := newFixture(t)
	vault := &models.Container{OwnerID: f.guild.ID, Name: "Vault"}
	vault.ID = f.st.id()
	f.st.containers[vault.ID] = vault

	options, err := f.svc.AutocompleteContainers(context.Background(), "va", f.actor, f.guild)
	if err != nil {
		t.Fatalf("AutocompleteContainers failed: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].Label != "Vault" || options[0].Description != "The Wardens" {
		t.Errorf("unexpected option %+v", options[0])
	}
}
