package models

import "time"

type SystemSetting struct {
	ID           int       `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateSettingRequest struct {
	SettingValue string `json:"setting_value"`
	Description  string `json:"description"`
}

// Setting keys read by the salary reconciliation
const (
	SettingSalaryRates          = "salary_rates"           // JSON object: section -> {regularRate, overtimeRate}
	SettingSalaryFallbackRate   = "salary_fallback_rate"   // JSON object: {regularRate, overtimeRate}
	SettingSalarySectionMapping = "salary_section_mapping" // JSON object: manpower section -> salary section
)
