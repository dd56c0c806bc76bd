package models

// OvertimeDetail is a single (hours, workers) allocation inside a section
type OvertimeDetail struct {
	Hours       float64 `json:"hours"`
	WorkerCount int     `json:"workerCount"`
}

// OvertimeRecord is the per-section overtime row for a date.
// TotalOtHours is derived: sum of Hours*WorkerCount over OvertimeDetails.
type OvertimeRecord struct {
	Section         string           `json:"section"`
	PresentWorkers  int              `json:"presentWorkers"`
	TotalWorkers    int              `json:"totalWorkers"`
	OvertimeDetails []OvertimeDetail `json:"overtimeDetails"`
	TotalOtHours    float64          `json:"totalOtHours"`
}

// OvertimeSummary aggregates all overtime records of a date
type OvertimeSummary struct {
	TotalSections       int     `json:"totalSections"`
	TotalPresentWorkers int     `json:"totalPresentWorkers"`
	TotalWorkers        int     `json:"totalWorkers"`
	TotalOtHours        float64 `json:"totalOtHours"`
}

// OvertimeSheet is what the overtime endpoint returns and accepts for one date
type OvertimeSheet struct {
	Date    string           `json:"date"`
	Records []OvertimeRecord `json:"records"`
	Summary OvertimeSummary  `json:"summary"`
}

// UpdateOvertimeDetailRequest is the body for editing one detail row
type UpdateOvertimeDetailRequest struct {
	Hours       *float64 `json:"hours"`
	WorkerCount *int     `json:"workerCount"`
}

// SetOvertimeDetailsRequest replaces every detail row of a section
type SetOvertimeDetailsRequest struct {
	OvertimeDetails []OvertimeDetail `json:"overtimeDetails"`
}
