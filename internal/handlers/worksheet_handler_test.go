package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"garment-backend/internal/models"
	"garment-backend/internal/services"
	"garment-backend/internal/upstream"
	"garment-backend/internal/worksheet"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollab struct {
	manpower    []models.ManpowerSection
	manpowerErr error
	saveErr     error
}

func (s *stubCollab) ManpowerSummary(ctx context.Context, date string) ([]models.ManpowerSection, error) {
	return s.manpower, s.manpowerErr
}

func (s *stubCollab) Overtime(ctx context.Context, date string) (models.OvertimeSheet, error) {
	return models.OvertimeSheet{Date: date}, nil
}

func (s *stubCollab) SaveOvertime(ctx context.Context, sheet models.OvertimeSheet) error {
	return s.saveErr
}

func (s *stubCollab) Salary(ctx context.Context, date string) (models.SalarySheet, error) {
	return models.SalarySheet{Date: date}, nil
}

func (s *stubCollab) SaveSalary(ctx context.Context, sheet models.SalarySheet) error {
	return nil
}

type envelope struct {
	Success bool             `json:"success"`
	Data    models.Worksheet `json:"data"`
	Message string           `json:"message"`
}

func newTestRouter(collab *stubCollab) *mux.Router {
	manager := worksheet.NewManager(worksheet.Deps{Collaborators: collab})
	h := NewWorksheetHandler(manager)
	reports := NewReportHandler(manager.Snapshot, services.NewReportService(""), nil)

	r := mux.NewRouter()
	r.HandleFunc("/api/worksheet", h.Get).Methods("GET")
	r.HandleFunc("/api/worksheet/select", h.Select).Methods("POST")
	r.HandleFunc("/api/worksheet/refresh", h.Refresh).Methods("POST")
	r.HandleFunc("/api/worksheet/save", h.Save).Methods("POST")
	r.HandleFunc("/api/worksheet/overtime/{section}/details", h.AddOvertimeDetail).Methods("POST")
	r.HandleFunc("/api/worksheet/overtime/{section}/details/{index}", h.UpdateOvertimeDetail).Methods("PATCH")
	r.HandleFunc("/api/worksheet/salary/{section}", h.UpdateSalaryRecord).Methods("PATCH")
	r.HandleFunc("/api/reports/salary.csv", reports.SalaryCSV).Methods("GET")
	r.HandleFunc("/api/reports/archives", reports.ListArchives).Methods("GET")
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func defaultCollab() *stubCollab {
	return &stubCollab{manpower: []models.ManpowerSection{
		{Section: "Operator", PresentWorkers: 10, TotalWorkers: 12},
		{Section: "Office Staff", PresentWorkers: 5, TotalWorkers: 5},
	}}
}

func TestWorksheetHandler_SelectAndEdit(t *testing.T) {
	r := newTestRouter(defaultCollab())

	rec, env := do(t, r, "POST", "/api/worksheet/select", map[string]string{"date": "2024-01-15"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, models.PhaseReady, env.Data.Phase)
	assert.Len(t, env.Data.Overtime, 2)

	rec, env = do(t, r, "POST", "/api/worksheet/overtime/Operator/details", models.OvertimeDetail{Hours: 2, WorkerCount: 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 10, env.Data.Overtime[0].OvertimeDetails[0].WorkerCount)
	assert.Equal(t, 20.0, env.Data.OvertimeSummary.TotalOtHours)
	assert.True(t, env.Data.Dirty)

	rec, env = do(t, r, "PATCH", "/api/worksheet/overtime/Operator/details/0", map[string]float64{"hours": 1.5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15.0, env.Data.Overtime[0].TotalOtHours)

	rec, env = do(t, r, "PATCH", "/api/worksheet/salary/Staff", map[string]int{"workerCount": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3200.0, env.Data.Salary[1].RegularAmount)

	rec, env = do(t, r, "POST", "/api/worksheet/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Data.Dirty)
	assert.Equal(t, "Data saved successfully", env.Message)
}

func TestWorksheetHandler_ErrorStatus(t *testing.T) {
	collab := defaultCollab()
	r := newTestRouter(collab)

	rec, _ := do(t, r, "POST", "/api/worksheet/save", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, r, "POST", "/api/worksheet/refresh", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, "POST", "/api/worksheet/select", map[string]string{"date": "Jan 15"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, "GET", "/api/reports/salary.csv", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, r, "GET", "/api/reports/archives", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, r, "POST", "/api/worksheet/select", map[string]string{"date": "2024-01-15"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, "POST", "/api/worksheet/overtime/Sewing/details", models.OvertimeDetail{Hours: 1, WorkerCount: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, "PATCH", "/api/worksheet/overtime/Operator/details/x", map[string]float64{"hours": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, "PATCH", "/api/worksheet/overtime/Operator/details/3", map[string]float64{"hours": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	collab.manpowerErr = &upstream.TransportError{Endpoint: upstream.EndpointManpowerSummary, Err: context.DeadlineExceeded}
	rec, env := do(t, r, "POST", "/api/worksheet/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, models.PhaseReady, env.Data.Phase)
	assert.Len(t, env.Data.Overtime, 2)
	assert.Contains(t, env.Message, "Could not reach")
}

func TestReportHandler_SalaryCSV(t *testing.T) {
	r := newTestRouter(defaultCollab())
	rec, _ := do(t, r, "POST", "/api/worksheet/select", map[string]string{"date": "2024-01-15"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, "GET", "/api/reports/salary.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary_2024-01-15.csv")
	assert.Contains(t, rec.Body.String(), "Operator")
}
