package repository

import (
	"context"
	"testing"
	"time"

	"colpoview/internal/domain/entity"
	"colpoview/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRegistrySeedsThreePatients(t *testing.T) {
	r := NewPatientRegistry(testLogger(), store.NewMemoryStore())

	patients := r.List(context.Background())
	if len(patients) != 3 {
		t.Fatalf("expected 3 seeded patients, got %d", len(patients))
	}
	if patients[0].Name != "Maria Santos" || patients[2].Name != "Carmen Silva" {
		t.Fatalf("unexpected seed order: %v", patients)
	}
	if patients[2].Analyses[0].Risk != entity.RiskHigh {
		t.Fatalf("unexpected seed history: %v", patients[2].Analyses)
	}
}

func TestRegistryMergesStoreOnceAndDedupes(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	stored := []entity.Patient{
		{ID: 100, Name: "Fernanda Costa", Age: 38, Analyses: []entity.AnalysisRecord{}},
		// Duplicate of seed id 1 must be skipped.
		{ID: 1, Name: "Impostora", Age: 99, Analyses: []entity.AnalysisRecord{}},
	}
	if err := store.SaveJSON(ctx, s, store.KeyPatients, stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	r := NewPatientRegistry(testLogger(), s)

	patients := r.List(ctx)
	if len(patients) != 4 {
		t.Fatalf("expected 3 seeds + 1 stored, got %d", len(patients))
	}
	for _, p := range patients {
		if p.ID == 1 && p.Name != "Maria Santos" {
			t.Fatalf("stored duplicate overwrote seed: %v", p)
		}
	}

	// Listing twice must not re-merge.
	if again := r.List(ctx); len(again) != 4 {
		t.Fatalf("second List re-merged: %d records", len(again))
	}
}

func TestRegistryAddWritesThrough(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewPatientRegistry(testLogger(), s)

	added, err := r.Add(ctx, entity.Patient{
		Name:           "Test Patient",
		Age:            30,
		Email:          "t@example.com",
		Phone:          "",
		MedicalHistory: "",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if added.ID == 0 {
		t.Fatal("no id assigned")
	}
	if len(added.Analyses) != 0 || added.Analyses == nil {
		t.Fatalf("new record must start with an empty history, got %v", added.Analyses)
	}
	if added.LastAnalysis == "" {
		t.Fatal("lastAnalysis not defaulted")
	}

	if got := len(r.List(ctx)); got != 4 {
		t.Fatalf("expected registry length 4, got %d", got)
	}

	var stored []entity.Patient
	if !store.LoadJSON(ctx, s, store.KeyPatients, &stored) {
		t.Fatal("patients key missing after add")
	}
	if len(stored) != 1 || stored[0].ID != added.ID || stored[0].Name != "Test Patient" {
		t.Fatalf("store write-through mismatch: %v", stored)
	}
}

func TestRegistryAddAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	r := NewPatientRegistry(testLogger(), store.NewMemoryStore()).(*patientRegistry)

	// Freeze the clock so every candidate id collides.
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	seen := make(map[int64]bool)
	for _, p := range r.List(ctx) {
		seen[p.ID] = true
	}

	for i := 0; i < 50; i++ {
		added, err := r.Add(ctx, entity.Patient{Name: "P", Age: 30})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[added.ID] {
			t.Fatalf("duplicate id assigned: %d", added.ID)
		}
		seen[added.ID] = true
	}
}

func TestRegistryEditRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewPatientRegistry(testLogger(), store.NewMemoryStore())

	before, err := r.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	updated, err := r.Update(ctx, entity.Patient{
		ID:             2,
		Name:           "Ana Costa Souza",
		Age:            39,
		Email:          "ana@nova.com",
		Phone:          before.Phone,
		MedicalHistory: before.MedicalHistory,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after, err := r.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByID after edit failed: %v", err)
	}

	if after.Name != "Ana Costa Souza" || after.Age != 39 || after.Email != "ana@nova.com" {
		t.Fatalf("edited fields not applied: %+v", after)
	}
	// Fields not overwritten keep their prior values.
	if after.Phone != before.Phone || after.MedicalHistory != before.MedicalHistory {
		t.Fatalf("untouched fields changed: %+v", after)
	}
	if after.LastAnalysis != before.LastAnalysis || len(after.Analyses) != len(before.Analyses) {
		t.Fatalf("history must survive edits: %+v", after)
	}
	if updated.Name != after.Name {
		t.Fatal("Update return value diverges from stored record")
	}
}

func TestRegistryEditUnknownID(t *testing.T) {
	r := NewPatientRegistry(testLogger(), store.NewMemoryStore())

	_, err := r.Update(context.Background(), entity.Patient{ID: 424242, Name: "X", Age: 1})
	if err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestRegistryAppendAnalysis(t *testing.T) {
	ctx := context.Background()
	r := NewPatientRegistry(testLogger(), store.NewMemoryStore())

	record := entity.AnalysisRecord{Date: "2024-06-01", Risk: entity.RiskModerate, Details: "Acompanhamento em 3 meses"}
	updated, err := r.AppendAnalysis(ctx, 2, record)
	if err != nil {
		t.Fatalf("AppendAnalysis failed: %v", err)
	}

	if updated.Analyses[0] != record {
		t.Fatalf("record not prepended: %v", updated.Analyses)
	}
	if updated.LastAnalysis != "2024-06-01" {
		t.Fatalf("lastAnalysis not refreshed: %s", updated.LastAnalysis)
	}
	if len(updated.Analyses) != 2 {
		t.Fatalf("prior history lost: %v", updated.Analyses)
	}
}
