package entity

// SymptomRecord is transient workflow input: it lives for one analysis
// session and is never persisted.
type SymptomRecord struct {
	Bleeding    bool   `json:"bleeding"`
	Pain        bool   `json:"pain"`
	Discharge   bool   `json:"discharge"`
	Itching     bool   `json:"itching"`
	Other       bool   `json:"other"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Severity    string `json:"severity"`
}

// AnalysisResult is the synthesized output of one engine run.
type AnalysisResult struct {
	Risk            RiskLevel      `json:"risk"`
	Confidence      int            `json:"confidence"`
	AffectedArea    int            `json:"affectedArea"`
	VascularPattern string         `json:"vascularPattern"`
	Recommendations string         `json:"recommendations"`
	Timestamp       string         `json:"timestamp"`
	PatientID       int64          `json:"patientId"`
	PatientName     string         `json:"patientName"`
	Symptoms        *SymptomRecord `json:"symptoms,omitempty"`
}

// WorkflowState names one step of the analysis workflow state machine.
type WorkflowState string

const (
	StateIdle             WorkflowState = "idle"
	StatePatientSelected  WorkflowState = "patient_selected"
	StateImageSelected    WorkflowState = "image_selected"
	StateSymptomsAttached WorkflowState = "symptoms_attached"
	StateAnalyzing        WorkflowState = "analyzing"
	StateResulted         WorkflowState = "resulted"
)
