package usecase

import (
	"context"
	"testing"

	"colpoview/internal/delivery/dto"
	"colpoview/internal/infrastructure/store"
	"colpoview/internal/repository"
)

func newPatientFixture(t *testing.T) PatientUsecase {
	t.Helper()
	registry := repository.NewPatientRegistry(testLogger(), store.NewMemoryStore())
	return NewPatientUsecase(testLogger(), registry)
}

func TestPatientListAndDetails(t *testing.T) {
	u := newPatientFixture(t)
	ctx := context.Background()

	patients := u.List(ctx)
	if len(patients) != 3 {
		t.Fatalf("expected 3 seeded patients, got %d", len(patients))
	}

	details, err := u.Details(ctx, 3)
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	if details.Name != "Carmen Silva" || len(details.Analyses) == 0 {
		t.Fatalf("unexpected details: %+v", details)
	}

	if _, err := u.Details(ctx, 424242); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientAddRejectsBadAge(t *testing.T) {
	u := newPatientFixture(t)
	ctx := context.Background()

	for _, age := range []string{"abc", "-1", "", "4.5"} {
		_, err := u.Add(ctx, &dto.PatientCreateRequest{Name: "X", Age: age})
		if err != ErrInvalidAge {
			t.Fatalf("age %q: expected ErrInvalidAge, got %v", age, err)
		}
	}

	if got := len(u.List(ctx)); got != 3 {
		t.Fatalf("rejected add grew the registry: %d", got)
	}
}

func TestPatientAddAndEdit(t *testing.T) {
	u := newPatientFixture(t)
	ctx := context.Background()

	added, err := u.Add(ctx, &dto.PatientCreateRequest{Name: "Test Patient", Age: "30"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.Age != 30 || len(added.Analyses) != 0 {
		t.Fatalf("unexpected new patient: %+v", added)
	}

	edited, err := u.Edit(ctx, added.ID, &dto.PatientUpdateRequest{Name: "Test Patient Edited", Age: "31"})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.Name != "Test Patient Edited" || edited.Age != 31 {
		t.Fatalf("edit not applied: %+v", edited)
	}

	if _, err := u.Edit(ctx, 424242, &dto.PatientUpdateRequest{Name: "X", Age: "1"}); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
