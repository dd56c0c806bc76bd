package reconcile

import (
	"math/rand"
	"testing"

	"garment-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeManpowerIntoOvertime_KeepsDetailsOnRefresh(t *testing.T) {
	existing := []models.OvertimeRecord{
		{
			Section:         "Helper",
			PresentWorkers:  18,
			TotalWorkers:    20,
			OvertimeDetails: []models.OvertimeDetail{{Hours: 1.5, WorkerCount: 5}},
			TotalOtHours:    7.5,
		},
	}
	manpower := []models.ManpowerSection{{Section: "Helper", PresentWorkers: 15, TotalWorkers: 20}}

	merged := MergeManpowerIntoOvertime(existing, manpower)

	require.Len(t, merged, 1)
	assert.Equal(t, 15, merged[0].PresentWorkers)
	assert.Equal(t, 20, merged[0].TotalWorkers)
	assert.Equal(t, []models.OvertimeDetail{{Hours: 1.5, WorkerCount: 5}}, merged[0].OvertimeDetails)
	assert.Equal(t, 7.5, merged[0].TotalOtHours)
	assert.Equal(t, 18, existing[0].PresentWorkers, "input must not be modified")
}

func TestMergeManpowerIntoOvertime_NewAndDroppedSections(t *testing.T) {
	existing := []models.OvertimeRecord{
		{Section: "Operator", PresentWorkers: 20, OvertimeDetails: []models.OvertimeDetail{{Hours: 2, WorkerCount: 10}}, TotalOtHours: 20},
		{Section: "Washing", PresentWorkers: 4, OvertimeDetails: []models.OvertimeDetail{{Hours: 1, WorkerCount: 4}}, TotalOtHours: 4},
	}
	manpower := []models.ManpowerSection{
		{Section: "Cutting", PresentWorkers: 8, TotalWorkers: 9},
		{Section: "Operator", PresentWorkers: 22, TotalWorkers: 25},
	}

	merged := MergeManpowerIntoOvertime(existing, manpower)

	require.Len(t, merged, 2)
	assert.Equal(t, "Cutting", merged[0].Section, "manpower order wins")
	assert.Empty(t, merged[0].OvertimeDetails)
	assert.NotNil(t, merged[0].OvertimeDetails)
	assert.Zero(t, merged[0].TotalOtHours)

	assert.Equal(t, "Operator", merged[1].Section)
	assert.Equal(t, 22, merged[1].PresentWorkers)
	assert.Equal(t, 20.0, merged[1].TotalOtHours)

	for _, rec := range merged {
		assert.NotEqual(t, "Washing", rec.Section, "sections missing from manpower are dropped")
	}
}

func TestMergeManpowerIntoOvertime_RepeatedSectionMergedOnce(t *testing.T) {
	existing := []models.OvertimeRecord{
		{Section: "Operator", PresentWorkers: 20, OvertimeDetails: []models.OvertimeDetail{{Hours: 2, WorkerCount: 10}}, TotalOtHours: 20},
	}
	manpower := []models.ManpowerSection{
		{Section: "Operator", PresentWorkers: 20, TotalWorkers: 22},
		{Section: "Helper", PresentWorkers: 6, TotalWorkers: 6},
		{Section: "Operator", PresentWorkers: 21, TotalWorkers: 22},
	}

	merged := MergeManpowerIntoOvertime(existing, manpower)

	require.Len(t, merged, 2)
	assert.Equal(t, "Operator", merged[0].Section)
	assert.Equal(t, 20, merged[0].PresentWorkers)
	assert.Equal(t, "Helper", merged[1].Section)
	assert.Equal(t, 20.0, SummarizeOvertime(merged).TotalOtHours)
}

func TestMergeManpowerIntoOvertime_DoesNotAliasDetails(t *testing.T) {
	existing := []models.OvertimeRecord{
		{Section: "Operator", PresentWorkers: 20, OvertimeDetails: []models.OvertimeDetail{{Hours: 2, WorkerCount: 10}}},
	}
	merged := MergeManpowerIntoOvertime(existing, []models.ManpowerSection{{Section: "Operator", PresentWorkers: 20}})

	merged[0].OvertimeDetails[0].WorkerCount = 1
	assert.Equal(t, 10, existing[0].OvertimeDetails[0].WorkerCount)
}

func TestMergeManpowerIntoOvertime_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeManpowerIntoOvertime(nil, nil))

	merged := MergeManpowerIntoOvertime(nil, []models.ManpowerSection{{Section: "Helper", PresentWorkers: 3, TotalWorkers: 4}})
	require.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].PresentWorkers)
}

func TestRecomputeOvertimeRecord(t *testing.T) {
	rec := models.OvertimeRecord{Section: "Operator", PresentWorkers: 20}
	details := []models.OvertimeDetail{{Hours: 2, WorkerCount: 10}, {Hours: 1.5, WorkerCount: 4}}

	once := RecomputeOvertimeRecord(rec, details)
	twice := RecomputeOvertimeRecord(once, once.OvertimeDetails)

	assert.Equal(t, 26.0, once.TotalOtHours)
	assert.Equal(t, once, twice, "recompute must be idempotent")
	assert.Zero(t, rec.TotalOtHours, "input must not be modified")
}

func TestSummarizeOvertime(t *testing.T) {
	records := []models.OvertimeRecord{
		{Section: "Operator", PresentWorkers: 20, TotalWorkers: 22, TotalOtHours: 20},
		{Section: "Helper", PresentWorkers: 15, TotalWorkers: 18, TotalOtHours: 7.5},
	}

	summary := SummarizeOvertime(records)

	assert.Equal(t, models.OvertimeSummary{
		TotalSections:       2,
		TotalPresentWorkers: 35,
		TotalWorkers:        40,
		TotalOtHours:        27.5,
	}, summary)
	assert.Equal(t, models.OvertimeSummary{}, SummarizeOvertime(nil))
}

func TestClampOvertimeWorkerCount(t *testing.T) {
	rec := models.OvertimeRecord{
		Section:         "Operator",
		PresentWorkers:  20,
		OvertimeDetails: []models.OvertimeDetail{{Hours: 2, WorkerCount: 10}},
	}

	tests := []struct {
		name      string
		index     int
		requested int
		want      int
	}{
		{"new row limited to remaining allowance", 1, 15, 10},
		{"new row within allowance", 1, 6, 6},
		{"existing row may take whole section", 0, 20, 20},
		{"existing row above present", 0, 25, 20},
		{"negative becomes zero", 1, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampOvertimeWorkerCount(rec, tt.index, tt.requested))
		})
	}
}

func TestClampOvertimeWorkerCount_OverAllocatedSection(t *testing.T) {
	// present dropped below what was already allocated
	rec := models.OvertimeRecord{
		PresentWorkers:  5,
		OvertimeDetails: []models.OvertimeDetail{{Hours: 1, WorkerCount: 8}},
	}
	assert.Equal(t, 0, ClampOvertimeWorkerCount(rec, 1, 3))
}

func TestClampOvertimeWorkerCount_RandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		rec := models.OvertimeRecord{
			Section:         "Operator",
			PresentWorkers:  rng.Intn(40),
			OvertimeDetails: []models.OvertimeDetail{},
		}

		for edit := 0; edit < 30; edit++ {
			index := rng.Intn(len(rec.OvertimeDetails) + 1)
			requested := rng.Intn(60) - 10
			count := ClampOvertimeWorkerCount(rec, index, requested)

			details := append([]models.OvertimeDetail{}, rec.OvertimeDetails...)
			if index == len(details) {
				details = append(details, models.OvertimeDetail{Hours: float64(rng.Intn(4) + 1), WorkerCount: count})
			} else {
				details[index].WorkerCount = count
			}
			rec = RecomputeOvertimeRecord(rec, details)

			assert.LessOrEqual(t, AllocatedWorkers(rec), rec.PresentWorkers,
				"trial %d edit %d: allocated workers exceed present", trial, edit)
			assert.InDelta(t, TotalOtHours(rec.OvertimeDetails), rec.TotalOtHours, 1e-9)
		}
	}
}

func TestRecomputeOvertimeRecords_FixesUntrustedTotals(t *testing.T) {
	records := []models.OvertimeRecord{
		{Section: "Cutting", OvertimeDetails: []models.OvertimeDetail{{Hours: 2, WorkerCount: 3}}, TotalOtHours: 99},
	}

	fixed := RecomputeOvertimeRecords(records)

	assert.Equal(t, 6.0, fixed[0].TotalOtHours)
	assert.Equal(t, 99.0, records[0].TotalOtHours)
}
