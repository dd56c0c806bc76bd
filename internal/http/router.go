package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"garment-backend/internal/handlers"
	"garment-backend/internal/middleware"
)

func NewRouter(
	worksheetHandler *handlers.WorksheetHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	saveLogHandler *handlers.SaveLogHandler,
	reportHandler *handlers.ReportHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware, middleware.RequestLogger)

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Notifications
	r.HandleFunc("/ws", notificationHandler.WebSocket)

	api := r.PathPrefix("/api").Subrouter()

	// Worksheet of the selected date
	api.HandleFunc("/worksheet", worksheetHandler.Get).Methods("GET")
	api.HandleFunc("/worksheet/select", worksheetHandler.Select).Methods("POST")
	api.HandleFunc("/worksheet/refresh", worksheetHandler.Refresh).Methods("POST")
	api.HandleFunc("/worksheet/save", worksheetHandler.Save).Methods("POST")
	api.HandleFunc("/worksheet/overtime/{section}/details", worksheetHandler.SetOvertimeDetails).Methods("PUT")
	api.HandleFunc("/worksheet/overtime/{section}/details", worksheetHandler.AddOvertimeDetail).Methods("POST")
	api.HandleFunc("/worksheet/overtime/{section}/details/{index:[0-9]+}", worksheetHandler.UpdateOvertimeDetail).Methods("PATCH")
	api.HandleFunc("/worksheet/overtime/{section}/details/{index:[0-9]+}", worksheetHandler.RemoveOvertimeDetail).Methods("DELETE")
	api.HandleFunc("/worksheet/salary/{section}", worksheetHandler.UpdateSalaryRecord).Methods("PATCH")

	// Settings (salary rates and section mapping)
	api.HandleFunc("/settings", systemSettingHandler.ListSettings).Methods("GET")
	api.HandleFunc("/settings/{key}", systemSettingHandler.GetSetting).Methods("GET")
	api.HandleFunc("/settings/{key}", systemSettingHandler.UpdateSetting).Methods("PUT")

	// Audit
	api.HandleFunc("/save-logs", saveLogHandler.List).Methods("GET")
	api.HandleFunc("/notifications", notificationHandler.Recent).Methods("GET")

	// Exports
	api.HandleFunc("/reports/salary.pdf", reportHandler.SalaryPDF).Methods("GET")
	api.HandleFunc("/reports/salary.csv", reportHandler.SalaryCSV).Methods("GET")
	api.HandleFunc("/reports/overtime.pdf", reportHandler.OvertimePDF).Methods("GET")
	api.HandleFunc("/reports/worksheet.xlsx", reportHandler.WorksheetXLSX).Methods("GET")
	api.HandleFunc("/reports/archives", reportHandler.ListArchives).Methods("GET")

	return r
}
