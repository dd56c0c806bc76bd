package models

import "time"

// WorksheetPhase is the fetch state of the selected date
type WorksheetPhase string

const (
	PhaseIdle             WorksheetPhase = "idle"
	PhaseFetchingOvertime WorksheetPhase = "fetching_overtime"
	PhaseFetchingManpower WorksheetPhase = "fetching_manpower"
	PhaseReady            WorksheetPhase = "ready"
)

// Worksheet is the reconciled overtime + salary working set of one date
type Worksheet struct {
	Date            string            `json:"date"`
	Phase           WorksheetPhase    `json:"phase"`
	Generation      uint64            `json:"generation"`
	Manpower        []ManpowerSection `json:"manpower"`
	Overtime        []OvertimeRecord  `json:"overtime"`
	OvertimeSummary OvertimeSummary   `json:"overtimeSummary"`
	Salary          []SalaryRecord    `json:"salary"`
	SalarySummary   SalarySummary     `json:"salarySummary"`
	Dirty           bool              `json:"dirty"`
	LastError       string            `json:"lastError,omitempty"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// WorksheetDraft is the unsaved part of a worksheet kept between requests
type WorksheetDraft struct {
	Date     string           `json:"date"`
	Overtime []OvertimeRecord `json:"overtime"`
	Salary   []SalaryRecord   `json:"salary"`
	SavedAt  time.Time        `json:"savedAt"`
}

// SelectDateRequest is the body of POST /api/worksheet/select
type SelectDateRequest struct {
	Date string `json:"date"`
}
