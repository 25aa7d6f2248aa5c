package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"colpoview/internal/delivery/dto"
	"colpoview/internal/usecase"
	"colpoview/pkg/response"
	"colpoview/pkg/validator"

	"github.com/gorilla/mux"
)

// maxImageBytes caps uploads; colposcopy stills are a few MB at most.
const maxImageBytes = 16 << 20

type AnalysisHandler struct {
	analysisUsecase usecase.AnalysisUsecase
	validator       *validator.CustomValidator
}

func NewAnalysisHandler(analysisUsecase usecase.AnalysisUsecase, validator *validator.CustomValidator) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
		validator:       validator,
	}
}

func (h *AnalysisHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.analysisUsecase.Start(r.Context(), &req)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Workflow session started", session)
}

func (h *AnalysisHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.analysisUsecase.Get(r.Context(), sessionID(r))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Workflow session retrieved", session)
}

func (h *AnalysisHandler) SelectPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.analysisUsecase.SelectPatient(r.Context(), sessionID(r), req.PatientID)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient selected", session)
}

// AttachImage takes a multipart upload under the "image" field. The declared
// media type of the part decides acceptance; non-images are rejected without
// touching workflow state.
func (h *AnalysisHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart payload", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image field", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(w, "Failed to read upload")
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}

	session, err := h.analysisUsecase.AttachImage(r.Context(), sessionID(r), header.Filename, mediaType, data)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image attached", session)
}

func (h *AnalysisHandler) ClearImage(w http.ResponseWriter, r *http.Request) {
	session, err := h.analysisUsecase.ClearImage(r.Context(), sessionID(r))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image cleared", session)
}

func (h *AnalysisHandler) AttachSymptoms(w http.ResponseWriter, r *http.Request) {
	var req dto.SymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.analysisUsecase.AttachSymptoms(r.Context(), sessionID(r), &req)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Symptoms attached", session)
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := h.analysisUsecase.Analyze(r.Context(), sessionID(r), &req)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Analysis completed", session)
}

func (h *AnalysisHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrSessionNotFound:
		response.NotFound(w, "Workflow session not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrNotAnImage:
		response.Error(w, http.StatusBadRequest, "Selected file is not an image", nil)
	case usecase.ErrNoImageSelected, usecase.ErrNoPatientSelected:
		response.Error(w, http.StatusConflict, err.Error(), nil)
	case usecase.ErrAnalysisInProgress:
		response.Error(w, http.StatusConflict, "Analysis already in progress", nil)
	default:
		response.InternalServerError(w, "Workflow operation failed")
	}
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
