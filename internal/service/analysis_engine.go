package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"colpoview/config"
	"colpoview/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// AnalysisRequest carries everything the engine gets to see. The image never
// leaves the process; the stub ignores its bytes entirely.
type AnalysisRequest struct {
	Patient  entity.Patient
	Image    []byte
	Symptoms *entity.SymptomRecord
}

// AnalysisEngine is the pluggable analysis capability. The shipped
// implementation is a randomized stub and must stay one: producing a
// clinically meaningful model is explicitly out of scope.
type AnalysisEngine interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*entity.AnalysisResult, error)
}

type mockAnalysisEngine struct {
	log   *logrus.Logger
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewMockAnalysisEngine(log *logrus.Logger, cfg config.EngineConfig) AnalysisEngine {
	return &mockAnalysisEngine{
		log:   log,
		delay: cfg.Delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

func (e *mockAnalysisEngine) Analyze(ctx context.Context, req AnalysisRequest) (*entity.AnalysisResult, error) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.mu.Lock()
	risk := e.drawRisk()
	confidence := 80 + e.rng.Intn(20) // [80,100)
	affectedArea := 5 + e.rng.Intn(30) // [5,35)
	e.mu.Unlock()

	result := &entity.AnalysisResult{
		Risk:            risk,
		Confidence:      confidence,
		AffectedArea:    affectedArea,
		VascularPattern: "Mosaico irregular",
		Recommendations: "Acompanhamento em 3 meses",
		Timestamp:       e.now().Format(time.RFC3339),
		PatientID:       req.Patient.ID,
		PatientName:     req.Patient.Name,
		Symptoms:        req.Symptoms,
	}

	e.log.WithFields(logrus.Fields{
		"patient_id": req.Patient.ID,
		"risk":       result.Risk,
		"confidence": result.Confidence,
	}).Info("Mock analysis completed")

	return result, nil
}

// drawRisk reproduces the original mock's chained coin flips: high half the
// time, then moderate half of the remainder, low otherwise.
func (e *mockAnalysisEngine) drawRisk() entity.RiskLevel {
	if e.rng.Float64() > 0.5 {
		return entity.RiskHigh
	}
	if e.rng.Float64() > 0.5 {
		return entity.RiskModerate
	}
	return entity.RiskLow
}
