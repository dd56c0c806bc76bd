package worksheet

import (
	"context"
	"fmt"

	"garment-backend/internal/metrics"
	"garment-backend/internal/models"
	"garment-backend/internal/timeutil"
	"garment-backend/internal/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Save posts the overtime records and then the salary records of the current
// date. A failed save keeps every edit and the draft; the user can retry.
func (m *Manager) Save(ctx context.Context) (models.Worksheet, error) {
	m.mu.Lock()
	if m.state.Phase != models.PhaseReady {
		m.mu.Unlock()
		return m.Snapshot(), ErrNotReady
	}
	ws := m.snapshotLocked()
	rev := m.revision
	m.mu.Unlock()

	saveID := uuid.New().String()
	logger := m.logger.With(zap.String("date", ws.Date), zap.String("save_id", saveID))

	entry := &models.WorksheetSaveLog{
		SaveID:              saveID,
		WorkDate:            ws.Date,
		Sections:            len(ws.Overtime),
		TotalPresentWorkers: ws.OvertimeSummary.TotalPresentWorkers,
		TotalOtHours:        ws.OvertimeSummary.TotalOtHours,
		SalaryGrandTotal:    ws.SalarySummary.GrandTotal,
	}

	err := m.collab.SaveOvertime(ctx, models.OvertimeSheet{
		Date:    ws.Date,
		Records: ws.Overtime,
		Summary: ws.OvertimeSummary,
	})
	if err != nil {
		return m.saveFailed(ctx, entry, logger, fmt.Errorf("save overtime for %s: %w", ws.Date, err))
	}

	err = m.collab.SaveSalary(ctx, models.SalarySheet{
		Date:    ws.Date,
		Records: ws.Salary,
		Summary: ws.SalarySummary,
	})
	if err != nil {
		return m.saveFailed(ctx, entry, logger, fmt.Errorf("save salary for %s: %w", ws.Date, err))
	}

	m.mu.Lock()
	cleared := m.state.Date == ws.Date && m.revision == rev
	if cleared {
		m.state.Dirty = false
		m.state.LastError = ""
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if cleared {
		m.deleteDraft(ctx, ws.Date, rev, logger)
	}

	key, err := m.archiver.ArchiveWorksheet(ctx, ws)
	if err != nil {
		logger.Warn("failed to archive saved worksheet", zap.Error(err))
	}
	entry.ArchiveKey = key
	entry.Outcome = models.SaveOutcomeSuccess
	m.record(ctx, entry, logger)

	metrics.WorksheetSavesTotal.WithLabelValues(models.SaveOutcomeSuccess).Inc()
	logger.Info("worksheet saved",
		zap.Int("sections", entry.Sections),
		zap.Float64("grand_total", entry.SalaryGrandTotal))
	m.notifier.Notify(models.Notification{
		Type:    models.NotificationSaved,
		Level:   "success",
		Date:    ws.Date,
		Phase:   snap.Phase,
		Message: fmt.Sprintf("Overtime and salary for %s saved", timeutil.FormatDisplayDate(ws.Date)),
		Time:    timeutil.Now(),
	})
	return snap, nil
}

func (m *Manager) saveFailed(ctx context.Context, entry *models.WorksheetSaveLog, logger *zap.Logger, err error) (models.Worksheet, error) {
	msg := upstream.UserMessage(err)

	m.mu.Lock()
	if m.state.Date == entry.WorkDate {
		m.state.LastError = msg
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	entry.Outcome = models.SaveOutcomeFailed
	entry.ErrorMessage = err.Error()
	m.record(ctx, entry, logger)

	metrics.WorksheetSavesTotal.WithLabelValues(models.SaveOutcomeFailed).Inc()
	logger.Error("worksheet save failed", zap.Error(err))
	m.notifier.Notify(models.Notification{
		Type:    models.NotificationError,
		Level:   "error",
		Date:    entry.WorkDate,
		Phase:   snap.Phase,
		Message: "Failed to save data: " + msg,
		Time:    timeutil.Now(),
	})
	return snap, err
}

// deleteDraft drops the draft unless an edit landed after the save cleared dirty
func (m *Manager) deleteDraft(ctx context.Context, date string, rev uint64, logger *zap.Logger) {
	m.draftMu.Lock()
	defer m.draftMu.Unlock()
	if !m.atRevision(date, rev, false) {
		return
	}
	if err := m.drafts.DeleteDraft(ctx, date); err != nil {
		logger.Warn("failed to delete worksheet draft", zap.Error(err))
	}
}

func (m *Manager) record(ctx context.Context, entry *models.WorksheetSaveLog, logger *zap.Logger) {
	if err := m.recorder.Create(ctx, entry); err != nil {
		logger.Warn("failed to write save log", zap.Error(err))
	}
}
