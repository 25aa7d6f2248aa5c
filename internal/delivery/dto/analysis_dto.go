package dto

// StartSessionRequest opens a workflow session for one patient.
type StartSessionRequest struct {
	PatientID int64 `json:"patient_id" validate:"required"`
}

type SymptomRequest struct {
	Bleeding    bool   `json:"bleeding"`
	Pain        bool   `json:"pain"`
	Discharge   bool   `json:"discharge"`
	Itching     bool   `json:"itching"`
	Other       bool   `json:"other"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Severity    string `json:"severity"`
}

// AnalyzeRequest triggers the engine. AppendToHistory opts the run into
// being written back to the patient's analysis history.
type AnalyzeRequest struct {
	AppendToHistory bool `json:"append_to_history"`
}

type AnalysisResultResponse struct {
	Risk            string          `json:"risk"`
	Confidence      int             `json:"confidence"`
	AffectedArea    int             `json:"affected_area"`
	VascularPattern string          `json:"vascular_pattern"`
	Recommendations string          `json:"recommendations"`
	Timestamp       string          `json:"timestamp"`
	PatientID       int64           `json:"patient_id"`
	PatientName     string          `json:"patient_name"`
	Symptoms        *SymptomRequest `json:"symptoms,omitempty"`
}

type WorkflowSessionResponse struct {
	ID               string                  `json:"id"`
	State            string                  `json:"state"`
	PatientID        int64                   `json:"patient_id"`
	PatientName      string                  `json:"patient_name"`
	ImageName        string                  `json:"image_name,omitempty"`
	ImageSize        int64                   `json:"image_size,omitempty"`
	ImagePreview     string                  `json:"image_preview,omitempty"`
	SymptomsAttached bool                    `json:"symptoms_attached"`
	Analyzing        bool                    `json:"analyzing"`
	Result           *AnalysisResultResponse `json:"result,omitempty"`
}
