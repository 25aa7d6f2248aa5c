package repository

import (
	"context"

	"colpoview/internal/domain/entity"
)

// PatientRegistry is the in-memory patient list backed by the persistent
// store. After construction the in-memory list is the source of truth; the
// store only ever receives write-throughs of store-born records.
type PatientRegistry interface {
	List(ctx context.Context) []entity.Patient
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	Add(ctx context.Context, patient entity.Patient) (*entity.Patient, error)
	Update(ctx context.Context, patient entity.Patient) (*entity.Patient, error)
	AppendAnalysis(ctx context.Context, id int64, record entity.AnalysisRecord) (*entity.Patient, error)
}
