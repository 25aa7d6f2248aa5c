package usecase

import (
	"context"
	"testing"

	"colpoview/internal/domain/entity"
	"colpoview/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func strPtr(s string) *string { return &s }

func TestSessionDefaultsWhenStoreEmpty(t *testing.T) {
	u := NewSessionUsecase(testLogger(), store.NewMemoryStore())

	profile := u.Current(context.Background())
	if profile.Name != "Dr. Ana Silva" || profile.Role != entity.RoleAdmin {
		t.Fatalf("unexpected default profile: %+v", profile)
	}
}

func TestSessionLoadsSavedProfileOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	saved := entity.DefaultUserProfile()
	saved.Name = "Dr. Outra Pessoa"
	if err := store.SaveJSON(ctx, s, store.KeyUserProfile, saved); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	u := NewSessionUsecase(testLogger(), s)
	if got := u.Current(ctx).Name; got != "Dr. Outra Pessoa" {
		t.Fatalf("saved profile not loaded: %s", got)
	}
}

func TestSessionFailsOpenOnCorruptProfile(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Save(ctx, store.KeyUserProfile, []byte("{{corrupt")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	u := NewSessionUsecase(testLogger(), s)
	if got := u.Current(ctx).Name; got != "Dr. Ana Silva" {
		t.Fatalf("corrupt profile must fall back to default, got %s", got)
	}
}

func TestUpdateProfileMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	u := NewSessionUsecase(testLogger(), s)

	updated, err := u.UpdateProfile(ctx, ProfileUpdate{
		Name:      strPtr("Dr. Ana S. Silva"),
		Specialty: strPtr("Colposcopia"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Dr. Ana S. Silva" || updated.Specialty != "Colposcopia" {
		t.Fatalf("fields not merged: %+v", updated)
	}
	// Untouched fields survive.
	if updated.CRM != "12345/SP" || updated.Email != "ana.silva@hospital.com" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	var persisted entity.UserProfile
	if !store.LoadJSON(ctx, s, store.KeyUserProfile, &persisted) {
		t.Fatal("profile not persisted")
	}
	if persisted.Name != "Dr. Ana S. Silva" {
		t.Fatalf("persisted profile stale: %+v", persisted)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	u := NewSessionUsecase(testLogger(), store.NewMemoryStore())

	if _, err := u.UpdateProfile(ctx, ProfileUpdate{Name: strPtr("   ")}); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := u.UpdateProfile(ctx, ProfileUpdate{Email: strPtr("not-an-email")}); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	// Failed updates must not mutate the current profile.
	if got := u.Current(ctx); got.Name != "Dr. Ana Silva" {
		t.Fatalf("profile mutated by rejected update: %+v", got)
	}
}

func TestLogoutClearsStoreAndResetsProfile(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	u := NewSessionUsecase(testLogger(), s)
	theme := NewThemeUsecase(testLogger(), s)

	theme.Toggle(ctx)
	if _, err := u.UpdateProfile(ctx, ProfileUpdate{Name: strPtr("Dr. Alterada")}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if err := u.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, ok, _ := s.Load(ctx, store.KeyUserProfile); ok {
		t.Fatal("userProfile key survived logout")
	}
	if _, ok, _ := s.Load(ctx, store.KeyDarkMode); ok {
		t.Fatal("darkMode key survived logout")
	}
	if got := u.Current(ctx); got.Name != "Dr. Ana Silva" {
		t.Fatalf("profile not reset to default: %+v", got)
	}
}

func TestPermissionChecks(t *testing.T) {
	ctx := context.Background()
	u := NewSessionUsecase(testLogger(), store.NewMemoryStore())

	if !u.IsAdmin(ctx) {
		t.Fatal("default profile should be admin")
	}
	if !u.HasPermission(ctx, entity.PermissionManagePatients) {
		t.Fatal("default profile should manage patients")
	}
	if u.HasPermission(ctx, "launch_rockets") {
		t.Fatal("unknown permission granted")
	}
}
