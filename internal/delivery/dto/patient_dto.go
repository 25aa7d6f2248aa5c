package dto

// PatientCreateRequest mirrors the add-patient form: age arrives as the raw
// form string and must parse to a non-negative integer at the boundary.
type PatientCreateRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            string `json:"age" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	MedicalHistory string `json:"medical_history"`
}

// PatientUpdateRequest is a full overwrite of the editable fields.
type PatientUpdateRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            string `json:"age" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	MedicalHistory string `json:"medical_history"`
}

type AnalysisRecordResponse struct {
	Date    string `json:"date"`
	Risk    string `json:"risk"`
	Details string `json:"details"`
}

type PatientResponse struct {
	ID             int64                    `json:"id"`
	Name           string                   `json:"name"`
	Age            int                      `json:"age"`
	Email          string                   `json:"email,omitempty"`
	Phone          string                   `json:"phone,omitempty"`
	MedicalHistory string                   `json:"medical_history"`
	LastAnalysis   string                   `json:"last_analysis"`
	Analyses       []AnalysisRecordResponse `json:"analyses"`
}
