package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"colpoview/internal/domain/entity"
	domainRepo "colpoview/internal/domain/repository"
	"colpoview/internal/infrastructure/store"

	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

type patientRegistry struct {
	mu    sync.Mutex
	log   *logrus.Logger
	store store.Store

	patients []entity.Patient
	// seedIDs marks records that came from the built-in seed set. Only
	// store-born records are written back under the patients key, matching
	// the seed-plus-store merge contract.
	seedIDs map[int64]bool
	now     func() time.Time
}

// NewPatientRegistry seeds the sample patients, merges whatever the store
// holds exactly once and dedupes by id (first occurrence wins). Repeated
// List calls never re-merge.
func NewPatientRegistry(log *logrus.Logger, s store.Store) domainRepo.PatientRegistry {
	r := &patientRegistry{
		log:     log,
		store:   s,
		seedIDs: make(map[int64]bool),
		now:     time.Now,
	}

	for _, p := range seedPatients() {
		r.patients = append(r.patients, p)
		r.seedIDs[p.ID] = true
	}

	var stored []entity.Patient
	if store.LoadJSON(context.Background(), s, store.KeyPatients, &stored) {
		seen := make(map[int64]bool, len(r.patients))
		for _, p := range r.patients {
			seen[p.ID] = true
		}
		for _, p := range stored {
			if seen[p.ID] {
				log.Warnf("Skipping stored patient with duplicate id %d", p.ID)
				continue
			}
			seen[p.ID] = true
			r.patients = append(r.patients, p)
		}
	}

	return r
}

func (r *patientRegistry) List(_ context.Context) []entity.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p.Clone())
	}
	return out
}

func (r *patientRegistry) FindByID(_ context.Context, id int64) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.patients {
		if p.ID == id {
			clone := p.Clone()
			return &clone, nil
		}
	}
	return nil, ErrPatientNotFound
}

// Add assigns a unique timestamp-derived id, appends the record in memory and
// then writes through to the store. Memory-then-store is not atomic; a crash
// in between leaves the store one record behind.
func (r *patientRegistry) Add(ctx context.Context, patient entity.Patient) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient.ID = r.nextIDLocked()
	if patient.Analyses == nil {
		patient.Analyses = []entity.AnalysisRecord{}
	}
	if patient.LastAnalysis == "" {
		patient.LastAnalysis = r.now().Format("2006-01-02")
	}

	r.patients = append(r.patients, patient)
	if err := r.persistLocked(ctx); err != nil {
		r.log.Warnf("Failed to persist patients after add: %+v", err)
	}

	clone := patient.Clone()
	return &clone, nil
}

func (r *patientRegistry) Update(ctx context.Context, patient entity.Patient) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.patients {
		if p.ID != patient.ID {
			continue
		}
		// Full overwrite of editable fields; history stays as stored.
		p.Name = patient.Name
		p.Age = patient.Age
		p.Email = patient.Email
		p.Phone = patient.Phone
		p.MedicalHistory = patient.MedicalHistory
		r.patients[i] = p

		if err := r.persistLocked(ctx); err != nil {
			r.log.Warnf("Failed to persist patients after update: %+v", err)
		}
		clone := p.Clone()
		return &clone, nil
	}
	return nil, ErrPatientNotFound
}

func (r *patientRegistry) AppendAnalysis(ctx context.Context, id int64, record entity.AnalysisRecord) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.patients {
		if p.ID != id {
			continue
		}
		p.Analyses = append([]entity.AnalysisRecord{record}, p.Analyses...)
		p.LastAnalysis = record.Date
		r.patients[i] = p

		if err := r.persistLocked(ctx); err != nil {
			r.log.Warnf("Failed to persist patients after analysis append: %+v", err)
		}
		clone := p.Clone()
		return &clone, nil
	}
	return nil, ErrPatientNotFound
}

// nextIDLocked derives an id from the wall clock like the original records,
// bumping until it is unique within the registry.
func (r *patientRegistry) nextIDLocked() int64 {
	used := make(map[int64]bool, len(r.patients))
	for _, p := range r.patients {
		used[p.ID] = true
	}
	id := r.now().UnixMilli()
	for used[id] {
		id++
	}
	return id
}

func (r *patientRegistry) persistLocked(ctx context.Context) error {
	stored := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		if r.seedIDs[p.ID] {
			continue
		}
		stored = append(stored, p)
	}
	return store.SaveJSON(ctx, r.store, store.KeyPatients, stored)
}

func seedPatients() []entity.Patient {
	return []entity.Patient{
		{
			ID:             1,
			Name:           "Maria Santos",
			Age:            45,
			Email:          "maria.santos@email.com",
			Phone:          "(11) 99999-9999",
			LastAnalysis:   "2024-01-15",
			MedicalHistory: "Histórico de HPV, acompanhamento regular",
			Analyses: []entity.AnalysisRecord{
				{Date: "2024-01-15", Risk: entity.RiskLow, Details: "Epitélio normal, sem alterações"},
				{Date: "2023-12-10", Risk: entity.RiskModerate, Details: "Pequenas alterações benignas"},
				{Date: "2023-11-05", Risk: entity.RiskLow, Details: "Controle pós-tratamento"},
			},
		},
		{
			ID:             2,
			Name:           "Ana Costa",
			Age:            38,
			Email:          "ana.costa@email.com",
			Phone:          "(11) 88888-8888",
			LastAnalysis:   "2024-01-12",
			MedicalHistory: "Primeira consulta, sem histórico relevante",
			Analyses: []entity.AnalysisRecord{
				{Date: "2024-01-12", Risk: entity.RiskLow, Details: "Exame preventivo normal"},
			},
		},
		{
			ID:             3,
			Name:           "Carmen Silva",
			Age:            52,
			Email:          "carmen.silva@email.com",
			Phone:          "(11) 77777-7777",
			LastAnalysis:   "2024-01-10",
			MedicalHistory: "Histórico familiar de câncer cervical",
			Analyses: []entity.AnalysisRecord{
				{Date: "2024-01-10", Risk: entity.RiskHigh, Details: "Alterações significativas detectadas"},
				{Date: "2023-12-15", Risk: entity.RiskModerate, Details: "Acompanhamento trimestral"},
			},
		},
	}
}
