package worksheet

import (
	"context"

	"garment-backend/internal/models"
	"garment-backend/internal/reconcile"
)

// Collaborators are the external services owning manpower, overtime and salary data
type Collaborators interface {
	ManpowerSummary(ctx context.Context, date string) ([]models.ManpowerSection, error)
	Overtime(ctx context.Context, date string) (models.OvertimeSheet, error)
	SaveOvertime(ctx context.Context, sheet models.OvertimeSheet) error
	Salary(ctx context.Context, date string) (models.SalarySheet, error)
	SaveSalary(ctx context.Context, sheet models.SalarySheet) error
}

// DraftStore keeps unsaved edits per date. LoadDraft returns nil, nil when
// there is no draft.
type DraftStore interface {
	LoadDraft(ctx context.Context, date string) (*models.WorksheetDraft, error)
	SaveDraft(ctx context.Context, draft *models.WorksheetDraft) error
	DeleteDraft(ctx context.Context, date string) error
}

// SaveRecorder writes the audit row of a save attempt
type SaveRecorder interface {
	Create(ctx context.Context, log *models.WorksheetSaveLog) error
}

// Notifier delivers user-facing messages
type Notifier interface {
	Notify(n models.Notification)
}

// Archiver stores a rendered copy of a saved worksheet and returns its key
type Archiver interface {
	ArchiveWorksheet(ctx context.Context, ws models.Worksheet) (string, error)
}

// RateSource provides the salary rate table and the manpower to salary section mapping
type RateSource interface {
	SalaryRates(ctx context.Context) (reconcile.RateTable, reconcile.SectionMapping, error)
}

type noopDrafts struct{}

func (noopDrafts) LoadDraft(context.Context, string) (*models.WorksheetDraft, error) {
	return nil, nil
}
func (noopDrafts) SaveDraft(context.Context, *models.WorksheetDraft) error { return nil }
func (noopDrafts) DeleteDraft(context.Context, string) error               { return nil }

type noopRecorder struct{}

func (noopRecorder) Create(context.Context, *models.WorksheetSaveLog) error { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(models.Notification) {}

type noopArchiver struct{}

func (noopArchiver) ArchiveWorksheet(context.Context, models.Worksheet) (string, error) {
	return "", nil
}

type defaultRates struct{}

func (defaultRates) SalaryRates(context.Context) (reconcile.RateTable, reconcile.SectionMapping, error) {
	return reconcile.DefaultRateTable(), reconcile.DefaultSectionMapping(), nil
}
