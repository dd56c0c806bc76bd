package handlers

import (
	"context"
	"net/http"
	"strconv"

	"garment-backend/internal/models"
	"garment-backend/internal/timeutil"
	"garment-backend/pkg/utils"
)

// SaveLogLister reads the save audit
type SaveLogLister interface {
	ListByDate(ctx context.Context, date string, limit int) ([]*models.WorksheetSaveLog, error)
}

type SaveLogHandler struct {
	Repo SaveLogLister
}

func NewSaveLogHandler(repo SaveLogLister) *SaveLogHandler {
	return &SaveLogHandler{Repo: repo}
}

// List returns save attempts, filtered by ?date= and capped by ?limit=
func (h *SaveLogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Save log requires a database")
		return
	}

	q := r.URL.Query()
	date := q.Get("date")
	if date != "" {
		normalized, err := timeutil.ParseDate(date)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		date = normalized
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	logs, err := h.Repo.ListByDate(r.Context(), date, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Success(w, http.StatusOK, logs, "")
}
