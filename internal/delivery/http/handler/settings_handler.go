package handler

import (
	"encoding/json"
	"net/http"

	"colpoview/internal/delivery/dto"
	"colpoview/internal/usecase"
	"colpoview/pkg/response"
	"colpoview/pkg/validator"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	themeUsecase    usecase.ThemeUsecase
	validator       *validator.CustomValidator
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase, themeUsecase usecase.ThemeUsecase, validator *validator.CustomValidator) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		themeUsecase:    themeUsecase,
		validator:       validator,
	}
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.settingsUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmptyName, usecase.ErrInvalidEmail:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.settingsUsecase.ChangePassword(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrPasswordMismatch, usecase.ErrPasswordTooShort:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrWrongCurrentPassword:
			response.Error(w, http.StatusUnauthorized, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Theme retrieved successfully", dto.ThemeResponse{
		DarkMode: h.themeUsecase.IsDarkMode(r.Context()),
	})
}

func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Theme toggled successfully", dto.ThemeResponse{
		DarkMode: h.themeUsecase.Toggle(r.Context()),
	})
}

func (h *SettingsHandler) ListUserManagement(w http.ResponseWriter, r *http.Request) {
	listing := h.settingsUsecase.ListUserManagement(r.Context())
	response.Success(w, http.StatusOK, "User management retrieved successfully", listing)
}

func (h *SettingsHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invite, err := h.settingsUsecase.CreateInvite(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create invite")
		return
	}

	response.Success(w, http.StatusCreated, "Invite created successfully", invite)
}
