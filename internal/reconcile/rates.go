package reconcile

import "garment-backend/internal/models"

// SectionMapping maps manpower sections onto coarser salary sections.
// Sections without an entry map to themselves.
type SectionMapping map[string]string

// Target returns the salary section a manpower section is paid under
func (m SectionMapping) Target(section string) string {
	if target, ok := m[section]; ok && target != "" {
		return target
	}
	return section
}

// RateTable is the section -> rate lookup used to seed salary rows
type RateTable struct {
	Rates    map[string]models.SalaryRate
	Fallback models.SalaryRate
}

// Lookup returns the rate pair for section, or the fallback pair for unknown sections
func (t RateTable) Lookup(section string) models.SalaryRate {
	if rate, ok := t.Rates[section]; ok {
		return rate
	}
	return t.Fallback
}

// DefaultFallbackRate applies to sections missing from the rate table
var DefaultFallbackRate = models.SalaryRate{RegularRate: 500, OvertimeRate: 60}

// DefaultSectionMapping is the built-in many-to-one mapping of staff sections.
func DefaultSectionMapping() SectionMapping {
	return SectionMapping{
		"Office Staff":     "Staff",
		"Mechanical Staff": "Staff",
		"Production Staff": "Staff",
	}
}

// DefaultRateTable is used when no rate table has been stored in settings
func DefaultRateTable() RateTable {
	return RateTable{
		Rates: map[string]models.SalaryRate{
			"Operator":  {RegularRate: 650, OvertimeRate: 80},
			"Helper":    {RegularRate: 450, OvertimeRate: 55},
			"Cutting":   {RegularRate: 600, OvertimeRate: 75},
			"Finishing": {RegularRate: 550, OvertimeRate: 70},
			"Iron":      {RegularRate: 550, OvertimeRate: 70},
			"Quality":   {RegularRate: 600, OvertimeRate: 75},
			"Staff":     {RegularRate: 800, OvertimeRate: 100},
		},
		Fallback: DefaultFallbackRate,
	}
}
