package models

import "time"

// Save outcomes recorded in worksheet_save_logs
const (
	SaveOutcomeSuccess = "success"
	SaveOutcomeFailed  = "failed"
)

// WorksheetSaveLog is an audit row written for every save attempt
type WorksheetSaveLog struct {
	ID                  int       `json:"id"`
	SaveID              string    `json:"save_id"`
	WorkDate            string    `json:"work_date"`
	Sections            int       `json:"sections"`
	TotalPresentWorkers int       `json:"total_present_workers"`
	TotalOtHours        float64   `json:"total_ot_hours"`
	SalaryGrandTotal    float64   `json:"salary_grand_total"`
	Outcome             string    `json:"outcome"`
	ErrorMessage        string    `json:"error_message,omitempty"`
	ArchiveKey          string    `json:"archive_key,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}
