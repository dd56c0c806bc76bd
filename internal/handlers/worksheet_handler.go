package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"garment-backend/internal/models"
	"garment-backend/internal/upstream"
	"garment-backend/internal/worksheet"
	"garment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type WorksheetHandler struct {
	Manager *worksheet.Manager
}

func NewWorksheetHandler(manager *worksheet.Manager) *WorksheetHandler {
	return &WorksheetHandler{Manager: manager}
}

// worksheetStatus maps worksheet and collaborator errors onto HTTP status codes
func worksheetStatus(err error) int {
	switch {
	case errors.Is(err, worksheet.ErrNoDate),
		errors.Is(err, worksheet.ErrInvalidDate),
		errors.Is(err, worksheet.ErrInvalidValue),
		errors.Is(err, worksheet.ErrDetailIndex):
		return http.StatusBadRequest
	case errors.Is(err, worksheet.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, worksheet.ErrNotReady),
		errors.Is(err, worksheet.ErrSuperseded):
		return http.StatusConflict
	case worksheet.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the worksheet snapshot, with the error message when err is set.
// Failed calls still carry the snapshot so the UI keeps showing the last good state.
func respond(w http.ResponseWriter, ws models.Worksheet, err error, okStatus int, okMessage string) {
	if err != nil {
		utils.JSON(w, worksheetStatus(err), utils.Envelope{
			Success: false,
			Data:    ws,
			Message: upstream.UserMessage(err),
		})
		return
	}
	utils.Success(w, okStatus, ws, okMessage)
}

func (h *WorksheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, http.StatusOK, h.Manager.Snapshot(), "")
}

func (h *WorksheetHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req models.SelectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.Manager.Select(r.Context(), req.Date)
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Manager.Refresh(r.Context())
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) SetOvertimeDetails(w http.ResponseWriter, r *http.Request) {
	var req models.SetOvertimeDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.Manager.SetOvertimeDetails(r.Context(), mux.Vars(r)["section"], req.OvertimeDetails)
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) AddOvertimeDetail(w http.ResponseWriter, r *http.Request) {
	var detail models.OvertimeDetail
	if err := json.NewDecoder(r.Body).Decode(&detail); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.Manager.AddOvertimeDetail(r.Context(), mux.Vars(r)["section"], detail)
	respond(w, ws, err, http.StatusCreated, "")
}

func (h *WorksheetHandler) UpdateOvertimeDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid detail index")
		return
	}

	var req models.UpdateOvertimeDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.Manager.UpdateOvertimeDetail(r.Context(), vars["section"], index, req)
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) RemoveOvertimeDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid detail index")
		return
	}

	ws, err := h.Manager.RemoveOvertimeDetail(r.Context(), vars["section"], index)
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) UpdateSalaryRecord(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSalaryRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.Manager.UpdateSalaryRecord(r.Context(), mux.Vars(r)["section"], req)
	respond(w, ws, err, http.StatusOK, "")
}

func (h *WorksheetHandler) Save(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Manager.Save(r.Context())
	respond(w, ws, err, http.StatusOK, "Data saved successfully")
}
