package models

import "time"

// Notification types pushed to connected UIs
const (
	NotificationPhase = "phase"
	NotificationError = "error"
	NotificationSaved = "saved"
)

// Notification is a user-facing message about the worksheet
type Notification struct {
	Type    string         `json:"type"`
	Level   string         `json:"level"`
	Date    string         `json:"date,omitempty"`
	Phase   WorksheetPhase `json:"phase,omitempty"`
	Message string         `json:"message"`
	Time    time.Time      `json:"time"`
}
