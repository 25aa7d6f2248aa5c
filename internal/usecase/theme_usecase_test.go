package usecase

import (
	"context"
	"testing"

	"colpoview/internal/infrastructure/store"
)

func TestThemeDefaultsToLight(t *testing.T) {
	u := NewThemeUsecase(testLogger(), store.NewMemoryStore())
	if u.IsDarkMode(context.Background()) {
		t.Fatal("theme must default to light")
	}
}

func TestThemeLoadsPersistedValue(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := store.SaveJSON(ctx, s, store.KeyDarkMode, true); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	u := NewThemeUsecase(testLogger(), s)
	if !u.IsDarkMode(ctx) {
		t.Fatal("persisted dark mode not loaded")
	}
}

func TestThemeFailsOpenOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Save(ctx, store.KeyDarkMode, []byte("nope")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	u := NewThemeUsecase(testLogger(), s)
	if u.IsDarkMode(ctx) {
		t.Fatal("corrupt value must read as light")
	}
}

func TestThemeDoubleToggleIsIdentity(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	u := NewThemeUsecase(testLogger(), s)

	initial := u.IsDarkMode(ctx)
	u.Toggle(ctx)
	u.Toggle(ctx)

	if u.IsDarkMode(ctx) != initial {
		t.Fatal("double toggle changed the theme")
	}

	var persisted bool
	if !store.LoadJSON(ctx, s, store.KeyDarkMode, &persisted) {
		t.Fatal("theme not persisted")
	}
	if persisted != initial {
		t.Fatalf("persisted value %v diverges from in-memory %v", persisted, initial)
	}
}

func TestThemeTogglePersistsEveryFlip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	u := NewThemeUsecase(testLogger(), s)

	if got := u.Toggle(ctx); !got {
		t.Fatal("first toggle should enable dark mode")
	}

	var persisted bool
	if !store.LoadJSON(ctx, s, store.KeyDarkMode, &persisted) || !persisted {
		t.Fatalf("flip not written through, got %v", persisted)
	}
}
