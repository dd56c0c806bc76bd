package handlers

import (
	"context"
	"fmt"
	"net/http"

	"garment-backend/internal/logging"
	"garment-backend/internal/models"
	"garment-backend/internal/services"
	"garment-backend/internal/timeutil"
	"garment-backend/pkg/utils"

	"go.uber.org/zap"
)

// ArchiveLister lists archived salary sheets of a date
type ArchiveLister interface {
	ListArchives(ctx context.Context, date string) ([]services.ArchivedSheet, error)
}

// ReportHandler exports the currently loaded worksheet
type ReportHandler struct {
	Snapshot func() models.Worksheet
	Service  *services.ReportService
	Archive  ArchiveLister
}

func NewReportHandler(snapshot func() models.Worksheet, service *services.ReportService, archive ArchiveLister) *ReportHandler {
	return &ReportHandler{Snapshot: snapshot, Service: service, Archive: archive}
}

// loaded returns the worksheet or writes 409 when nothing is loaded yet
func (h *ReportHandler) loaded(w http.ResponseWriter) (models.Worksheet, bool) {
	ws := h.Snapshot()
	if ws.Date == "" {
		utils.Error(w, http.StatusConflict, "No work date loaded")
		return ws, false
	}
	return ws, true
}

func (h *ReportHandler) export(w http.ResponseWriter, kind, contentType, filename string, render func(models.Worksheet) ([]byte, error)) {
	ws, ok := h.loaded(w)
	if !ok {
		return
	}
	body, err := render(ws)
	if err != nil {
		logging.Named("http").Error("report generation failed", zap.String("report", kind), zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Failed to generate "+kind)
		return
	}
	utils.Attachment(w, contentType, fmt.Sprintf(filename, ws.Date), body)
}

func (h *ReportHandler) SalaryPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, "salary PDF", "application/pdf", "salary_%s.pdf", h.Service.GenerateSalaryPDF)
}

func (h *ReportHandler) OvertimePDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, "overtime PDF", "application/pdf", "overtime_%s.pdf", h.Service.GenerateOvertimePDF)
}

func (h *ReportHandler) SalaryCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, "salary CSV", "text/csv", "salary_%s.csv", h.Service.GenerateSalaryCSV)
}

func (h *ReportHandler) WorksheetXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, "workbook", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "worksheet_%s.xlsx", h.Service.GenerateWorkbook)
}

// ListArchives lists archived salary sheets; ?date= defaults to the loaded date
func (h *ReportHandler) ListArchives(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Archive is not configured")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.Snapshot().Date
	}
	date, err := timeutil.ParseDate(date)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sheets, err := h.Archive.ListArchives(r.Context(), date)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.Success(w, http.StatusOK, sheets, "")
}
