package converter

import (
	"colpoview/internal/delivery/dto"
	"colpoview/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	analyses := make([]dto.AnalysisRecordResponse, 0, len(patient.Analyses))
	for _, a := range patient.Analyses {
		analyses = append(analyses, dto.AnalysisRecordResponse{
			Date:    a.Date,
			Risk:    string(a.Risk),
			Details: a.Details,
		})
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		Age:            patient.Age,
		Email:          patient.Email,
		Phone:          patient.Phone,
		MedicalHistory: patient.MedicalHistory,
		LastAnalysis:   patient.LastAnalysis,
		Analyses:       analyses,
	}
}

// ProfileToResponse converts the current UserProfile to its response DTO.
func ProfileToResponse(profile entity.UserProfile) *dto.UserProfileResponse {
	permissions := make([]string, len(profile.Permissions))
	copy(permissions, profile.Permissions)

	return &dto.UserProfileResponse{
		ID:          profile.ID,
		Name:        profile.Name,
		CRM:         profile.CRM,
		Specialty:   profile.Specialty,
		Email:       profile.Email,
		Role:        profile.Role,
		Permissions: permissions,
	}
}

// SymptomsToEntity maps the symptom form onto the transient SymptomRecord.
func SymptomsToEntity(req *dto.SymptomRequest) *entity.SymptomRecord {
	if req == nil {
		return nil
	}
	return &entity.SymptomRecord{
		Bleeding:    req.Bleeding,
		Pain:        req.Pain,
		Discharge:   req.Discharge,
		Itching:     req.Itching,
		Other:       req.Other,
		Description: req.Description,
		Duration:    req.Duration,
		Severity:    req.Severity,
	}
}

// SymptomsToResponse is the inverse mapping for result payloads.
func SymptomsToResponse(record *entity.SymptomRecord) *dto.SymptomRequest {
	if record == nil {
		return nil
	}
	return &dto.SymptomRequest{
		Bleeding:    record.Bleeding,
		Pain:        record.Pain,
		Discharge:   record.Discharge,
		Itching:     record.Itching,
		Other:       record.Other,
		Description: record.Description,
		Duration:    record.Duration,
		Severity:    record.Severity,
	}
}

// ResultToResponse converts an AnalysisResult to its response DTO.
func ResultToResponse(result *entity.AnalysisResult) *dto.AnalysisResultResponse {
	if result == nil {
		return nil
	}
	return &dto.AnalysisResultResponse{
		Risk:            string(result.Risk),
		Confidence:      result.Confidence,
		AffectedArea:    result.AffectedArea,
		VascularPattern: result.VascularPattern,
		Recommendations: result.Recommendations,
		Timestamp:       result.Timestamp,
		PatientID:       result.PatientID,
		PatientName:     result.PatientName,
		Symptoms:        SymptomsToResponse(result.Symptoms),
	}
}
