package entity

// RiskLevel is the sole output classification of an analysis. The values are
// the Portuguese labels the application displays and stores.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Baixo"
	RiskModerate RiskLevel = "Moderado"
	RiskHigh     RiskLevel = "Alto"
)

// Valid reports whether r is one of the three enumerated levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

// AnalysisRecord is one entry in a patient's analysis history.
type AnalysisRecord struct {
	Date    string    `json:"date"`
	Risk    RiskLevel `json:"risk"`
	Details string    `json:"details"`
}

// Patient is a registry record. IDs are timestamp-derived but uniqueness is
// enforced by the registry on every add.
type Patient struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Age            int              `json:"age"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	MedicalHistory string           `json:"medicalHistory"`
	LastAnalysis   string           `json:"lastAnalysis"`
	Analyses       []AnalysisRecord `json:"analyses"`
}

// Clone returns a deep copy so registry snapshots cannot alias internal state.
func (p Patient) Clone() Patient {
	out := p
	out.Analyses = make([]AnalysisRecord, len(p.Analyses))
	copy(out.Analyses, p.Analyses)
	return out
}
