package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garment-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, success bool, data interface{}, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"data":    data,
		"message": message,
	}))
}

func TestManpowerSummary_SendsDateAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/manpower/summary", r.URL.Path)
		assert.Equal(t, "2024-01-15", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, true, map[string]interface{}{
			"date": "2024-01-15",
			"sections": []models.ManpowerSection{
				{Section: "Operator", PresentWorkers: 10, TotalWorkers: 12},
				{Section: "Helper", PresentWorkers: 15, TotalWorkers: 18},
			},
		}, "")
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	sections, err := c.ManpowerSummary(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Helper", sections[1].Section)
	assert.Equal(t, 15, sections[1].PresentWorkers)
}

func TestManpowerSummary_AcceptsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, []models.ManpowerSection{
			{Section: "Cutting", PresentWorkers: 4, TotalWorkers: 5},
		}, "")
	}))
	defer srv.Close()

	sections, err := NewClient(srv.URL, "", time.Second).ManpowerSummary(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Cutting", sections[0].Section)
}

func TestOvertime_EmptyDateGivesEmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	sheet, err := NewClient(srv.URL, "", time.Second).Overtime(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", sheet.Date)
	assert.NotNil(t, sheet.Records)
	assert.Empty(t, sheet.Records)
}

func TestSaveSalary_PostsFullSheet(t *testing.T) {
	var got models.SalarySheet
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/salary", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(t, w, http.StatusOK, true, nil, "saved")
	}))
	defer srv.Close()

	sheet := models.SalarySheet{
		Date: "2024-01-15",
		Records: []models.SalaryRecord{
			{Section: "Staff", WorkerCount: 10, RegularRate: 800, RegularAmount: 8000, TotalAmount: 8000},
		},
	}
	require.NoError(t, NewClient(srv.URL, "", time.Second).SaveSalary(context.Background(), sheet))
	assert.Equal(t, sheet.Records, got.Records)
}

func TestErrors_APIFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		success bool
		message string
		wantMsg string
	}{
		{name: "success false", status: http.StatusOK, success: false, message: "date is locked", wantMsg: "date is locked"},
		{name: "server error with message", status: http.StatusInternalServerError, message: "db down", wantMsg: "db down"},
		{name: "server error without message", status: http.StatusBadGateway, wantMsg: "Bad Gateway"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tc.status, tc.success, nil, tc.message)
			}))
			defer srv.Close()

			err := NewClient(srv.URL, "", time.Second).SaveOvertime(context.Background(), models.OvertimeSheet{Date: "2024-01-15"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAPI))
			assert.False(t, errors.Is(err, ErrTransport))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, EndpointOvertimeSave, apiErr.Endpoint)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMsg, UserMessage(err))
		})
	}
}

func TestErrors_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Salary(context.Background(), "2024-01-15")
	assert.True(t, errors.Is(err, ErrAPI))
}

func TestErrors_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second).ManpowerSummary(context.Background(), "2024-01-15")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.False(t, errors.Is(err, ErrAPI))
	assert.Contains(t, UserMessage(err), "Could not reach")
}

func TestErrors_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, "", 50*time.Millisecond).Overtime(context.Background(), "2024-01-15")
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestErrors_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, "", time.Second).Salary(ctx, "2024-01-15")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, context.Canceled))
}
