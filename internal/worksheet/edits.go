package worksheet

import (
	"context"
	"fmt"
	"math"

	"garment-backend/internal/models"
	"garment-backend/internal/reconcile"
	"garment-backend/internal/timeutil"

	"go.uber.org/zap"
)

// SetOvertimeDetails replaces every detail row of section. Worker counts are
// clamped row by row so the section never exceeds its present workers.
func (m *Manager) SetOvertimeDetails(ctx context.Context, section string, details []models.OvertimeDetail) (models.Worksheet, error) {
	for _, d := range details {
		if err := validHours(d.Hours); err != nil {
			return m.Snapshot(), err
		}
	}
	return m.editOvertime(ctx, section, func(rec models.OvertimeRecord) ([]models.OvertimeDetail, error) {
		clamped := models.OvertimeRecord{PresentWorkers: rec.PresentWorkers, OvertimeDetails: []models.OvertimeDetail{}}
		for _, d := range details {
			d.WorkerCount = reconcile.ClampOvertimeWorkerCount(clamped, len(clamped.OvertimeDetails), d.WorkerCount)
			clamped.OvertimeDetails = append(clamped.OvertimeDetails, d)
		}
		return clamped.OvertimeDetails, nil
	})
}

// AddOvertimeDetail appends one detail row to section
func (m *Manager) AddOvertimeDetail(ctx context.Context, section string, detail models.OvertimeDetail) (models.Worksheet, error) {
	if err := validHours(detail.Hours); err != nil {
		return m.Snapshot(), err
	}
	return m.editOvertime(ctx, section, func(rec models.OvertimeRecord) ([]models.OvertimeDetail, error) {
		detail.WorkerCount = reconcile.ClampOvertimeWorkerCount(rec, len(rec.OvertimeDetails), detail.WorkerCount)
		return append(rec.OvertimeDetails, detail), nil
	})
}

// UpdateOvertimeDetail edits one detail row. Nil fields stay unchanged.
func (m *Manager) UpdateOvertimeDetail(ctx context.Context, section string, index int, patch models.UpdateOvertimeDetailRequest) (models.Worksheet, error) {
	if patch.Hours != nil {
		if err := validHours(*patch.Hours); err != nil {
			return m.Snapshot(), err
		}
	}
	return m.editOvertime(ctx, section, func(rec models.OvertimeRecord) ([]models.OvertimeDetail, error) {
		if index < 0 || index >= len(rec.OvertimeDetails) {
			return nil, fmt.Errorf("%w: %d", ErrDetailIndex, index)
		}
		details := rec.OvertimeDetails
		if patch.Hours != nil {
			details[index].Hours = *patch.Hours
		}
		if patch.WorkerCount != nil {
			details[index].WorkerCount = reconcile.ClampOvertimeWorkerCount(rec, index, *patch.WorkerCount)
		}
		return details, nil
	})
}

// RemoveOvertimeDetail deletes one detail row
func (m *Manager) RemoveOvertimeDetail(ctx context.Context, section string, index int) (models.Worksheet, error) {
	return m.editOvertime(ctx, section, func(rec models.OvertimeRecord) ([]models.OvertimeDetail, error) {
		if index < 0 || index >= len(rec.OvertimeDetails) {
			return nil, fmt.Errorf("%w: %d", ErrDetailIndex, index)
		}
		details := make([]models.OvertimeDetail, 0, len(rec.OvertimeDetails)-1)
		details = append(details, rec.OvertimeDetails[:index]...)
		return append(details, rec.OvertimeDetails[index+1:]...), nil
	})
}

// UpdateSalaryRecord patches the editable fields of one salary row
func (m *Manager) UpdateSalaryRecord(ctx context.Context, section string, patch models.UpdateSalaryRecordRequest) (models.Worksheet, error) {
	if patch.WorkerCount != nil && *patch.WorkerCount < 0 {
		return m.Snapshot(), fmt.Errorf("%w: worker count must not be negative", ErrInvalidValue)
	}
	for name, v := range map[string]*float64{
		"regular rate":   patch.RegularRate,
		"overtime hours": patch.OvertimeHours,
		"overtime rate":  patch.OvertimeRate,
	} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return m.Snapshot(), fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidValue, name)
		}
	}

	m.mu.Lock()
	if m.state.Phase != models.PhaseReady {
		m.mu.Unlock()
		return m.Snapshot(), ErrNotReady
	}
	idx := -1
	for i, rec := range m.state.Salary {
		if rec.Section == section {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return m.Snapshot(), fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	records := reconcile.CloneSalaryRecords(m.state.Salary)
	rec := records[idx]
	if patch.WorkerCount != nil {
		rec.WorkerCount = *patch.WorkerCount
	}
	if patch.RegularRate != nil {
		rec.RegularRate = *patch.RegularRate
	}
	if patch.OvertimeHours != nil {
		rec.OvertimeHours = *patch.OvertimeHours
	}
	if patch.OvertimeRate != nil {
		rec.OvertimeRate = *patch.OvertimeRate
	}
	records[idx] = reconcile.RecomputeSalaryRecord(rec)

	m.state.Salary = records
	m.state.SalarySummary = reconcile.SummarizeSalary(records)
	snap, rev := m.commitEditLocked()
	m.mu.Unlock()

	m.persistDraft(ctx, snap, rev)
	return snap, nil
}

// editOvertime runs fn against a private copy of section's record and installs
// the returned details with totals recomputed from the full set.
func (m *Manager) editOvertime(ctx context.Context, section string, fn func(models.OvertimeRecord) ([]models.OvertimeDetail, error)) (models.Worksheet, error) {
	m.mu.Lock()
	if m.state.Phase != models.PhaseReady {
		m.mu.Unlock()
		return m.Snapshot(), ErrNotReady
	}
	idx := -1
	for i, rec := range m.state.Overtime {
		if rec.Section == section {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return m.Snapshot(), fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	records := reconcile.CloneOvertimeRecords(m.state.Overtime)
	details, err := fn(records[idx])
	if err != nil {
		m.mu.Unlock()
		return m.Snapshot(), err
	}
	records[idx] = reconcile.RecomputeOvertimeRecord(records[idx], details)

	m.state.Overtime = records
	m.state.OvertimeSummary = reconcile.SummarizeOvertime(records)
	snap, rev := m.commitEditLocked()
	m.mu.Unlock()

	m.persistDraft(ctx, snap, rev)
	return snap, nil
}

func (m *Manager) commitEditLocked() (models.Worksheet, uint64) {
	m.state.Dirty = true
	m.state.UpdatedAt = timeutil.Now()
	m.revision++
	return m.snapshotLocked(), m.revision
}

// persistDraft stores the records of edit rev. Writes for a superseded
// revision or an already saved worksheet are skipped. Failures only cost
// crash safety.
func (m *Manager) persistDraft(ctx context.Context, ws models.Worksheet, rev uint64) {
	m.draftMu.Lock()
	defer m.draftMu.Unlock()
	if !m.atRevision(ws.Date, rev, true) {
		return
	}

	draft := &models.WorksheetDraft{
		Date:     ws.Date,
		Overtime: ws.Overtime,
		Salary:   ws.Salary,
		SavedAt:  ws.UpdatedAt,
	}
	if err := m.drafts.SaveDraft(ctx, draft); err != nil {
		m.logger.Warn("failed to store worksheet draft", zap.String("date", ws.Date), zap.Error(err))
	}
}

// atRevision reports whether the worksheet still shows date at rev with the given dirty flag
func (m *Manager) atRevision(date string, rev uint64, dirty bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Date == date && m.revision == rev && m.state.Dirty == dirty
}

func validHours(h float64) error {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: hours must be a non-negative number", ErrInvalidValue)
	}
	return nil
}
