package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"colpoview/internal/converter"
	"colpoview/internal/delivery/dto"
	"colpoview/internal/domain/entity"
	domainRepo "colpoview/internal/domain/repository"
	"colpoview/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound    = errors.New("workflow session not found")
	ErrNoPatientSelected  = errors.New("no patient selected")
	ErrNoImageSelected    = errors.New("no image selected")
	ErrNotAnImage         = errors.New("file is not an image")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
)

// AnalysisUsecase drives the per-session workflow state machine:
// Idle -> PatientSelected -> ImageSelected -> (SymptomsAttached) ->
// Analyzing -> Resulted. Sessions are created on patient selection and live
// in process memory only.
type AnalysisUsecase interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.WorkflowSessionResponse, error)
	SelectPatient(ctx context.Context, sessionID string, patientID int64) (*dto.WorkflowSessionResponse, error)
	AttachImage(ctx context.Context, sessionID, name, mediaType string, data []byte) (*dto.WorkflowSessionResponse, error)
	ClearImage(ctx context.Context, sessionID string) (*dto.WorkflowSessionResponse, error)
	AttachSymptoms(ctx context.Context, sessionID string, req *dto.SymptomRequest) (*dto.WorkflowSessionResponse, error)
	Analyze(ctx context.Context, sessionID string, req *dto.AnalyzeRequest) (*dto.WorkflowSessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.WorkflowSessionResponse, error)
}

type workflowSession struct {
	id           string
	patient      entity.Patient
	imageName    string
	imageType    string
	imageSize    int64
	imageData    []byte
	imagePreview string
	symptoms     *entity.SymptomRecord
	analyzing    bool
	result       *entity.AnalysisResult
}

type analysisUsecase struct {
	mu       sync.Mutex
	log      *logrus.Logger
	registry domainRepo.PatientRegistry
	engine   service.AnalysisEngine
	sessions map[string]*workflowSession
	// linkToHistory appends every completed run to the patient's analysis
	// history in addition to per-request opt-in.
	linkToHistory bool
}

func NewAnalysisUsecase(log *logrus.Logger, registry domainRepo.PatientRegistry, engine service.AnalysisEngine, linkToHistory bool) AnalysisUsecase {
	return &analysisUsecase{
		log:           log,
		registry:      registry,
		engine:        engine,
		sessions:      make(map[string]*workflowSession),
		linkToHistory: linkToHistory,
	}
}

func (u *analysisUsecase) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.WorkflowSessionResponse, error) {
	patient, err := u.registry.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	s := &workflowSession{
		id:      uuid.New().String(),
		patient: *patient,
	}

	u.mu.Lock()
	u.sessions[s.id] = s
	resp := sessionToResponse(s)
	u.mu.Unlock()

	return resp, nil
}

// SelectPatient re-targets an existing session and resets any prior result.
func (u *analysisUsecase) SelectPatient(ctx context.Context, sessionID string, patientID int64) (*dto.WorkflowSessionResponse, error) {
	patient, err := u.registry.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.analyzing {
		return nil, ErrAnalysisInProgress
	}

	s.patient = *patient
	s.result = nil
	return sessionToResponse(s), nil
}

// AttachImage accepts only payloads whose declared media type begins with
// "image/". Anything else is rejected and the session is left untouched.
// The accepted image becomes a data-URL preview; a previous result clears.
func (u *analysisUsecase) AttachImage(_ context.Context, sessionID, name, mediaType string, data []byte) (*dto.WorkflowSessionResponse, error) {
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, ErrNotAnImage
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.analyzing {
		return nil, ErrAnalysisInProgress
	}

	s.imageName = name
	s.imageType = mediaType
	s.imageSize = int64(len(data))
	s.imageData = data
	s.imagePreview = fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data))
	s.result = nil

	return sessionToResponse(s), nil
}

func (u *analysisUsecase) ClearImage(_ context.Context, sessionID string) (*dto.WorkflowSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.analyzing {
		return nil, ErrAnalysisInProgress
	}

	s.imageName = ""
	s.imageType = ""
	s.imageSize = 0
	s.imageData = nil
	s.imagePreview = ""
	s.result = nil

	return sessionToResponse(s), nil
}

// AttachSymptoms is optional and idempotent: re-attaching overwrites.
func (u *analysisUsecase) AttachSymptoms(_ context.Context, sessionID string, req *dto.SymptomRequest) (*dto.WorkflowSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.symptoms = converter.SymptomsToEntity(req)
	return sessionToResponse(s), nil
}

// Analyze runs the engine. It requires a patient and an image, refuses to
// re-enter while a run is in flight, and overwrites any previous result on
// re-trigger.
func (u *analysisUsecase) Analyze(ctx context.Context, sessionID string, req *dto.AnalyzeRequest) (*dto.WorkflowSessionResponse, error) {
	u.mu.Lock()
	s, ok := u.sessions[sessionID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.patient.ID == 0 {
		u.mu.Unlock()
		return nil, ErrNoPatientSelected
	}
	if len(s.imageData) == 0 {
		u.mu.Unlock()
		return nil, ErrNoImageSelected
	}
	if s.analyzing {
		u.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}
	s.analyzing = true
	engineReq := service.AnalysisRequest{
		Patient:  s.patient,
		Image:    s.imageData,
		Symptoms: s.symptoms,
	}
	u.mu.Unlock()

	result, err := u.engine.Analyze(ctx, engineReq)

	u.mu.Lock()
	defer u.mu.Unlock()
	s.analyzing = false
	if err != nil {
		u.log.Warnf("Analysis engine failed: %+v", err)
		return nil, err
	}
	s.result = result

	if req != nil && (req.AppendToHistory || u.linkToHistory) {
		u.appendToHistoryLocked(ctx, s, result)
	}

	return sessionToResponse(s), nil
}

func (u *analysisUsecase) Get(_ context.Context, sessionID string) (*dto.WorkflowSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sessionToResponse(s), nil
}

func (u *analysisUsecase) appendToHistoryLocked(ctx context.Context, s *workflowSession, result *entity.AnalysisResult) {
	record := entity.AnalysisRecord{
		Date:    result.Timestamp[:10],
		Risk:    result.Risk,
		Details: result.Recommendations,
	}
	if _, err := u.registry.AppendAnalysis(ctx, s.patient.ID, record); err != nil {
		u.log.Warnf("Failed to append analysis to patient %d: %+v", s.patient.ID, err)
	}
}

func sessionToResponse(s *workflowSession) *dto.WorkflowSessionResponse {
	return &dto.WorkflowSessionResponse{
		ID:               s.id,
		State:            string(sessionState(s)),
		PatientID:        s.patient.ID,
		PatientName:      s.patient.Name,
		ImageName:        s.imageName,
		ImageSize:        s.imageSize,
		ImagePreview:     s.imagePreview,
		SymptomsAttached: s.symptoms != nil,
		Analyzing:        s.analyzing,
		Result:           converter.ResultToResponse(s.result),
	}
}

func sessionState(s *workflowSession) entity.WorkflowState {
	switch {
	case s.analyzing:
		return entity.StateAnalyzing
	case s.result != nil:
		return entity.StateResulted
	case len(s.imageData) > 0 && s.symptoms != nil:
		return entity.StateSymptomsAttached
	case len(s.imageData) > 0:
		return entity.StateImageSelected
	case s.patient.ID != 0:
		return entity.StatePatientSelected
	default:
		return entity.StateIdle
	}
}
