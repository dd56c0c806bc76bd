package models

// SalaryRecord is the per-section daily salary row.
// RegularAmount, OvertimeAmount and TotalAmount are derived from the other fields.
type SalaryRecord struct {
	Section        string  `json:"section"`
	WorkerCount    int     `json:"workerCount"`
	RegularRate    float64 `json:"regularRate"`
	OvertimeHours  float64 `json:"overtimeHours"`
	OvertimeRate   float64 `json:"overtimeRate"`
	RegularAmount  float64 `json:"regularAmount"`
	OvertimeAmount float64 `json:"overtimeAmount"`
	TotalAmount    float64 `json:"totalAmount"`
}

// SalarySummary aggregates all salary records of a date
type SalarySummary struct {
	TotalSections       int     `json:"totalSections"`
	TotalWorkers        int     `json:"totalWorkers"`
	TotalRegularAmount  float64 `json:"totalRegularAmount"`
	TotalOvertimeAmount float64 `json:"totalOvertimeAmount"`
	GrandTotal          float64 `json:"grandTotal"`
}

// SalarySheet is what the salary endpoint returns and accepts for one date
type SalarySheet struct {
	Date    string         `json:"date"`
	Records []SalaryRecord `json:"records"`
	Summary SalarySummary  `json:"summary"`
}

// SalaryRate is the rate pair applied to one salary section
type SalaryRate struct {
	RegularRate  float64 `json:"regularRate"`
	OvertimeRate float64 `json:"overtimeRate"`
}

// UpdateSalaryRecordRequest patches the editable fields of a salary row.
// Nil fields are left unchanged.
type UpdateSalaryRecordRequest struct {
	WorkerCount   *int     `json:"workerCount"`
	RegularRate   *float64 `json:"regularRate"`
	OvertimeHours *float64 `json:"overtimeHours"`
	OvertimeRate  *float64 `json:"overtimeRate"`
}
