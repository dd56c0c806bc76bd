// Package reconcile keeps overtime and salary working sets consistent with the
// attendance counts of the manpower summary.
//
// Every function is pure: inputs are never modified and a fresh slice is
// returned, so callers can swap whole collections in one step.
package reconcile

import "garment-backend/internal/models"

// MergeManpowerIntoOvertime folds a fresh manpower fetch into the current
// overtime records.
//
// Manpower decides which sections exist and in what order. A section that
// already has a record keeps its overtime details and total hours and only
// takes the new present/total counts. New sections start with no details.
// Records whose section is missing from manpower are dropped. A section
// repeated in manpower is merged once, at its first position.
func MergeManpowerIntoOvertime(existing []models.OvertimeRecord, manpower []models.ManpowerSection) []models.OvertimeRecord {
	bySection := make(map[string]models.OvertimeRecord, len(existing))
	for _, rec := range existing {
		bySection[rec.Section] = rec
	}

	emitted := make(map[string]bool, len(manpower))
	merged := make([]models.OvertimeRecord, 0, len(manpower))
	for _, mp := range manpower {
		if emitted[mp.Section] {
			continue
		}
		emitted[mp.Section] = true
		if rec, ok := bySection[mp.Section]; ok {
			rec.OvertimeDetails = cloneDetails(rec.OvertimeDetails)
			rec.PresentWorkers = mp.PresentWorkers
			rec.TotalWorkers = mp.TotalWorkers
			merged = append(merged, rec)
			continue
		}
		merged = append(merged, models.OvertimeRecord{
			Section:         mp.Section,
			PresentWorkers:  mp.PresentWorkers,
			TotalWorkers:    mp.TotalWorkers,
			OvertimeDetails: []models.OvertimeDetail{},
			TotalOtHours:    0,
		})
	}
	return merged
}

// RecomputeOvertimeRecord installs details on a copy of record and recomputes
// its total overtime hours.
func RecomputeOvertimeRecord(record models.OvertimeRecord, details []models.OvertimeDetail) models.OvertimeRecord {
	record.OvertimeDetails = cloneDetails(details)
	record.TotalOtHours = TotalOtHours(record.OvertimeDetails)
	return record
}

// TotalOtHours is the sum of hours x workers over details
func TotalOtHours(details []models.OvertimeDetail) float64 {
	var total float64
	for _, d := range details {
		total += d.Hours * float64(d.WorkerCount)
	}
	return total
}

// SummarizeOvertime derives the summary from the full record set.
func SummarizeOvertime(records []models.OvertimeRecord) models.OvertimeSummary {
	summary := models.OvertimeSummary{TotalSections: len(records)}
	for _, rec := range records {
		summary.TotalPresentWorkers += rec.PresentWorkers
		summary.TotalWorkers += rec.TotalWorkers
		summary.TotalOtHours += rec.TotalOtHours
	}
	return summary
}

// ClampOvertimeWorkerCount limits the worker count requested for one detail
// row so that the section never has more overtime workers than present
// workers. detailIndex may equal len(record.OvertimeDetails) for a row that is
// about to be appended.
func ClampOvertimeWorkerCount(record models.OvertimeRecord, detailIndex int, requestedCount int) int {
	others := AllocatedWorkers(record)
	if detailIndex >= 0 && detailIndex < len(record.OvertimeDetails) {
		others -= record.OvertimeDetails[detailIndex].WorkerCount
	}

	allowance := record.PresentWorkers - others
	if allowance < 0 {
		allowance = 0
	}

	switch {
	case requestedCount < 0:
		return 0
	case requestedCount > allowance:
		return allowance
	default:
		return requestedCount
	}
}

// AllocatedWorkers is the number of workers already spread over detail rows
func AllocatedWorkers(record models.OvertimeRecord) int {
	n := 0
	for _, d := range record.OvertimeDetails {
		n += d.WorkerCount
	}
	return n
}

// RecomputeOvertimeRecords recomputes the derived hours of every record. Used
// on data coming from outside, whose totals are not trusted.
func RecomputeOvertimeRecords(records []models.OvertimeRecord) []models.OvertimeRecord {
	out := make([]models.OvertimeRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, RecomputeOvertimeRecord(rec, rec.OvertimeDetails))
	}
	return out
}

// CloneOvertimeRecords deep copies records including their detail rows
func CloneOvertimeRecords(records []models.OvertimeRecord) []models.OvertimeRecord {
	if records == nil {
		return nil
	}
	out := make([]models.OvertimeRecord, len(records))
	for i, rec := range records {
		rec.OvertimeDetails = cloneDetails(rec.OvertimeDetails)
		out[i] = rec
	}
	return out
}

func cloneDetails(details []models.OvertimeDetail) []models.OvertimeDetail {
	out := make([]models.OvertimeDetail, len(details))
	copy(out, details)
	return out
}
