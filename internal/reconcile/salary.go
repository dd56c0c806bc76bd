package reconcile

import "garment-backend/internal/models"

// RecomputeSalaryRecord returns a copy of record with its amounts derived
// from worker count, hours and rates.
func RecomputeSalaryRecord(record models.SalaryRecord) models.SalaryRecord {
	record.RegularAmount = float64(record.WorkerCount) * record.RegularRate
	record.OvertimeAmount = record.OvertimeHours * record.OvertimeRate
	record.TotalAmount = record.RegularAmount + record.OvertimeAmount
	return record
}

// RecomputeSalaryRecords recomputes every row
func RecomputeSalaryRecords(records []models.SalaryRecord) []models.SalaryRecord {
	out := make([]models.SalaryRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, RecomputeSalaryRecord(rec))
	}
	return out
}

// SummarizeSalary derives the salary summary from the full record set.
func SummarizeSalary(records []models.SalaryRecord) models.SalarySummary {
	summary := models.SalarySummary{TotalSections: len(records)}
	for _, rec := range records {
		summary.TotalWorkers += rec.WorkerCount
		summary.TotalRegularAmount += rec.RegularAmount
		summary.TotalOvertimeAmount += rec.OvertimeAmount
		summary.GrandTotal += rec.TotalAmount
	}
	return summary
}

// AggregateManpower sums present workers per salary section
func AggregateManpower(manpower []models.ManpowerSection, mapping SectionMapping) map[string]int {
	totals := make(map[string]int)
	for _, mp := range manpower {
		totals[mapping.Target(mp.Section)] += mp.PresentWorkers
	}
	return totals
}

// SalarySections lists the salary sections covered by manpower, in the order
// their first manpower section appears.
func SalarySections(manpower []models.ManpowerSection, mapping SectionMapping) []string {
	seen := make(map[string]bool)
	var sections []string
	for _, mp := range manpower {
		target := mapping.Target(mp.Section)
		if seen[target] {
			continue
		}
		seen[target] = true
		sections = append(sections, target)
	}
	return sections
}

// SyncSalaryWorkerCountsFromManpower overwrites the worker count of every
// salary row that has mapped manpower data and recomputes its amounts. Rows
// without manpower data keep their previous worker count.
func SyncSalaryWorkerCountsFromManpower(salary []models.SalaryRecord, manpower []models.ManpowerSection, mapping SectionMapping) []models.SalaryRecord {
	totals := AggregateManpower(manpower, mapping)

	out := make([]models.SalaryRecord, 0, len(salary))
	for _, rec := range salary {
		if workers, ok := totals[rec.Section]; ok {
			rec.WorkerCount = workers
		}
		out = append(out, RecomputeSalaryRecord(rec))
	}
	return out
}

// DefaultSalaryRecords seeds one zero-worker row per section with rates from the table
func DefaultSalaryRecords(sections []string, rates RateTable) []models.SalaryRecord {
	out := make([]models.SalaryRecord, 0, len(sections))
	for _, section := range sections {
		rate := rates.Lookup(section)
		out = append(out, RecomputeSalaryRecord(models.SalaryRecord{
			Section:      section,
			RegularRate:  rate.RegularRate,
			OvertimeRate: rate.OvertimeRate,
		}))
	}
	return out
}

// EnsureSalarySections appends seeded rows for salary sections that manpower
// covers but the record set lacks. Existing rows are kept untouched.
func EnsureSalarySections(salary []models.SalaryRecord, manpower []models.ManpowerSection, mapping SectionMapping, rates RateTable) []models.SalaryRecord {
	have := make(map[string]bool, len(salary))
	out := CloneSalaryRecords(salary)
	if out == nil {
		out = []models.SalaryRecord{}
	}
	for _, rec := range salary {
		have[rec.Section] = true
	}

	var missing []string
	for _, section := range SalarySections(manpower, mapping) {
		if !have[section] {
			missing = append(missing, section)
		}
	}
	return append(out, DefaultSalaryRecords(missing, rates)...)
}

// CloneSalaryRecords copies the record slice
func CloneSalaryRecords(records []models.SalaryRecord) []models.SalaryRecord {
	if records == nil {
		return nil
	}
	out := make([]models.SalaryRecord, len(records))
	copy(out, records)
	return out
}
