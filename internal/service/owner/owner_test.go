package owner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/domain/services"
)

type fakeOwnerRepo struct {
	nextID int64
	owners map[int64]*models.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[int64]*models.Owner)}
}

func (r *fakeOwnerRepo) GetByID(ctx context.Context, id int64) (*models.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (r *fakeOwnerRepo) GetByExternalID(ctx context.Context, externalID int64) (*models.Owner, error) {
	for _, o := range r.owners {
		if o.ExternalID == externalID {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOwnerRepo) Create(ctx context.Context, owner *models.Owner) error {
	r.nextID++
	owner.ID = r.nextID
	r.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepo) UpdateUser(ctx context.Context, owner *models.Owner) error {
	if _, ok := r.owners[owner.ID]; !ok {
		return domain.ErrNotFound
	}
	r.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepo) SetPrimaryContainer(ctx context.Context, userID int64, containerID *int64) error {
	o, ok := r.owners[userID]
	if !ok {
		return domain.ErrNotFound
	}
	o.PrimaryContainerID = containerID
	return nil
}

type fakeSettingsRepo struct {
	settings map[int64]*models.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[int64]*models.UserSettings)}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, ownerID int64) (*models.UserSettings, error) {
	s, ok := r.settings[ownerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, settings *models.UserSettings) error {
	r.settings[settings.OwnerID] = settings
	return nil
}

func newService(t *testing.T) (services.OwnerService, *fakeOwnerRepo, *fakeSettingsRepo) {
	t.Helper()
	owners := newFakeOwnerRepo()
	settings := newFakeSettingsRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOwnerService(owners, settings, logger), owners, settings
}

func TestProvisionUser_CreatesWithDefaultSettings(t *testing.T) {
	svc, _, settings := newService(t)

	user, err := svc.ProvisionUser(context.Background(), &services.ProvisionUserRequest{
		ExternalID: 100, UserName: "rook", GlobalName: "Rook",
	})
	if err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}
	if user.Type != models.OwnerTypeUser || user.UserName != "rook" {
		t.Errorf("unexpected user %+v", user)
	}

	s, ok := settings.settings[user.ID]
	if !ok {
		t.Fatal("expected default settings row created")
	}
	if !s.EphemeralContainer || !s.EphemeralUser || !s.EphemeralItem {
		t.Errorf("expected all flags defaulted true, got %+v", s)
	}
}

func TestProvisionUser_RefreshesChangedProfile(t *testing.T) {
	svc, owners, _ := newService(t)

	first, err := svc.ProvisionUser(context.Background(), &services.ProvisionUserRequest{ExternalID: 100, UserName: "rook"})
	if err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	second, err := svc.ProvisionUser(context.Background(), &services.ProvisionUserRequest{ExternalID: 100, UserName: "rook", GlobalName: "Rook the Bold"})
	if err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same owner, got %d and %d", first.ID, second.ID)
	}
	if owners.owners[first.ID].GlobalUserName != "Rook the Bold" {
		t.Errorf("expected refreshed global name, got %q", owners.owners[first.ID].GlobalUserName)
	}
}

func TestProvisionUser_GuildExternalIDConflicts(t *testing.T) {
	svc, _, _ := newService(t)

	if _, err := svc.ProvisionGuild(context.Background(), 100, "The Wardens"); err != nil {
		t.Fatalf("ProvisionGuild failed: %v", err)
	}

	_, err := svc.ProvisionUser(context.Background(), &services.ProvisionUserRequest{ExternalID: 100, UserName: "rook"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for mismatched owner type, got %v", err)
	}
}

func TestProvisionUser_RequiresName(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.ProvisionUser(context.Background(), &services.ProvisionUserRequest{ExternalID: 100})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProvisionGuild_Idempotent(t *testing.T) {
	svc, _, _ := newService(t)

	first, err := svc.ProvisionGuild(context.Background(), 200, "The Wardens")
	if err != nil {
		t.Fatalf("ProvisionGuild failed: %v", err)
	}
	second, err := svc.ProvisionGuild(context.Background(), 200, "Renamed")
	if err != nil {
		t.Fatalf("ProvisionGuild failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same guild, got %d and %d", first.ID, second.ID)
	}
}

func TestEnsureSystemOwner_Singleton(t *testing.T) {
	svc, owners, _ := newService(t)

	first, err := svc.EnsureSystemOwner(context.Background())
	if err != nil {
		t.Fatalf("EnsureSystemOwner failed: %v", err)
	}
	second, err := svc.EnsureSystemOwner(context.Background())
	if err != nil {
		t.Fatalf("EnsureSystemOwner failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected a singleton system owner, got %d and %d", first.ID, second.ID)
	}
	if len(owners.owners) != 1 {
		t.Errorf("expected exactly one owner row, got %d", len(owners.owners))
	}
}

func TestUpdateUser_GuildRejected(t *testing.T) {
	svc, _, _ := newService(t)
	guild, err := svc.ProvisionGuild(context.Background(), 200, "The Wardens")
	if err != nil {
		t.Fatalf("ProvisionGuild failed: %v", err)
	}

	_, err = svc.UpdateUser(context.Background(), guild, &services.UpdateUserRequest{UserName: "nope"})
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestGetSettings_RecreatesMissingRow(t *testing.T) {
	owners := newFakeOwnerRepo()
	settings := newFakeSettingsRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSettingsService(settings, logger)

	user := &models.Owner{ExternalID: 100, Type: models.OwnerTypeUser, UserName: "rook"}
	if err := owners.Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.GetSettings(context.Background(), user)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !got.EphemeralContainer || !got.EphemeralUser || !got.EphemeralItem {
		t.Errorf("expected recreated defaults, got %+v", got)
	}
	if _, ok := settings.settings[user.ID]; !ok {
		t.Error("expected the recreated row persisted")
	}
}

func TestUpdateSettings_ReplacesFlags(t *testing.T) {
	settings := newFakeSettingsRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSettingsService(settings, logger)

	user := &models.Owner{ID: 1, Type: models.OwnerTypeUser, UserName: "rook"}
	got, err := svc.UpdateSettings(context.Background(), user, &services.UpdateSettingsRequest{
		EphemeralContainer: false,
		EphemeralUser:      true,
		EphemeralItem:      false,
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if got.EphemeralContainer || !got.EphemeralUser || got.EphemeralItem {
		t.Errorf("unexpected flags %+v", got)
	}
}
