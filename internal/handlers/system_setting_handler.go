package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"garment-backend/internal/models"
	"garment-backend/internal/services"
	"garment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SystemSettingHandler struct {
	Service *services.SystemSettingService
}

func NewSystemSettingHandler(service *services.SystemSettingService) *SystemSettingHandler {
	return &SystemSettingHandler{Service: service}
}

func (h *SystemSettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Service.GetSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(w, http.StatusOK, setting, "")
}

func (h *SystemSettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.ListSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(w, http.StatusOK, settings, "")
}

func (h *SystemSettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	setting, err := h.Service.UpsertSetting(r.Context(), mux.Vars(r)["key"], req.SettingValue, req.Description)
	switch {
	case errors.Is(err, services.ErrInvalidSetting):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSettingsUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
	case err != nil:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	default:
		utils.Success(w, http.StatusOK, setting, "Setting updated successfully")
	}
}
