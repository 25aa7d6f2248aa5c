package usecase

import (
	"context"
	"errors"
	"strconv"

	"colpoview/internal/converter"
	"colpoview/internal/delivery/dto"
	"colpoview/internal/domain/entity"
	domainRepo "colpoview/internal/domain/repository"
	"colpoview/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound = repository.ErrPatientNotFound
	ErrInvalidAge      = errors.New("age must be a non-negative integer")
)

type PatientUsecase interface {
	List(ctx context.Context) []dto.PatientResponse
	Details(ctx context.Context, id int64) (*dto.PatientResponse, error)
	Add(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error)
	Edit(ctx context.Context, id int64, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log      *logrus.Logger
	registry domainRepo.PatientRegistry
}

func NewPatientUsecase(log *logrus.Logger, registry domainRepo.PatientRegistry) PatientUsecase {
	return &patientUsecase{log: log, registry: registry}
}

func (u *patientUsecase) List(ctx context.Context) []dto.PatientResponse {
	patients := u.registry.List(ctx)
	out := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, *converter.PatientToResponse(&p))
	}
	return out
}

// Details is the read-only projection with the full analysis history in
// stored order.
func (u *patientUsecase) Details(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.registry.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Add(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error) {
	age, err := parseAge(req.Age)
	if err != nil {
		return nil, err
	}

	patient, err := u.registry.Add(ctx, entity.Patient{
		Name:           req.Name,
		Age:            age,
		Email:          req.Email,
		Phone:          req.Phone,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		u.log.Warnf("Failed to add patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Edit(ctx context.Context, id int64, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error) {
	age, err := parseAge(req.Age)
	if err != nil {
		return nil, err
	}

	patient, err := u.registry.Update(ctx, entity.Patient{
		ID:             id,
		Name:           req.Name,
		Age:            age,
		Email:          req.Email,
		Phone:          req.Phone,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func parseAge(raw string) (int, error) {
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 {
		return 0, ErrInvalidAge
	}
	return age, nil
}
