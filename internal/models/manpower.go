package models

// ManpowerSection is one section of the daily attendance summary.
// Produced by the external manpower collaborator; present <= total is its responsibility.
type ManpowerSection struct {
	Section        string `json:"section"`
	PresentWorkers int    `json:"presentWorkers"`
	TotalWorkers   int    `json:"totalWorkers"`
}

// ManpowerSummary is the payload of the manpower summary endpoint
type ManpowerSummary struct {
	Date     string            `json:"date"`
	Sections []ManpowerSection `json:"sections"`
}
