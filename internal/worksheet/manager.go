// Package worksheet holds the selected work date and its reconciled overtime
// and salary records. All fetches for a date run through Manager so that
// stale responses are discarded and failed fetches never wipe good state.
package worksheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"garment-backend/internal/logging"
	"garment-backend/internal/metrics"
	"garment-backend/internal/models"
	"garment-backend/internal/reconcile"
	"garment-backend/internal/timeutil"
	"garment-backend/internal/upstream"

	"go.uber.org/zap"
)

// Deps wires a Manager. Only Collaborators is required.
type Deps struct {
	Collaborators Collaborators
	Drafts        DraftStore
	Recorder      SaveRecorder
	Notifier      Notifier
	Archiver      Archiver
	Rates         RateSource
}

// Manager is the single date-scoped worksheet of the service
type Manager struct {
	mu sync.Mutex

	// draftMu orders draft writes and deletes; taken before mu, never inside it
	draftMu sync.Mutex

	collab   Collaborators
	drafts   DraftStore
	recorder SaveRecorder
	notifier Notifier
	archiver Archiver
	rates    RateSource
	logger   *zap.Logger

	state models.Worksheet

	// generation of the newest select/refresh; state.Generation is the one committed
	generation uint64

	// revision increments on every edit so a save only clears dirty for what it sent
	revision uint64

	// hasData is set once any date reached ready
	hasData bool
}

// NewManager creates an idle worksheet
func NewManager(deps Deps) *Manager {
	m := &Manager{
		collab:   deps.Collaborators,
		drafts:   deps.Drafts,
		recorder: deps.Recorder,
		notifier: deps.Notifier,
		archiver: deps.Archiver,
		rates:    deps.Rates,
		logger:   logging.Named("worksheet"),
		state: models.Worksheet{
			Phase:    models.PhaseIdle,
			Manpower: []models.ManpowerSection{},
			Overtime: []models.OvertimeRecord{},
			Salary:   []models.SalaryRecord{},
		},
	}
	if m.drafts == nil {
		m.drafts = noopDrafts{}
	}
	if m.recorder == nil {
		m.recorder = noopRecorder{}
	}
	if m.notifier == nil {
		m.notifier = noopNotifier{}
	}
	if m.archiver == nil {
		m.archiver = noopArchiver{}
	}
	if m.rates == nil {
		m.rates = defaultRates{}
	}
	return m
}

// Snapshot returns a deep copy of the current worksheet
func (m *Manager) Snapshot() models.Worksheet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() models.Worksheet {
	ws := m.state
	ws.Manpower = append([]models.ManpowerSection{}, m.state.Manpower...)
	ws.Overtime = reconcile.CloneOvertimeRecords(m.state.Overtime)
	if ws.Overtime == nil {
		ws.Overtime = []models.OvertimeRecord{}
	}
	ws.Salary = reconcile.CloneSalaryRecords(m.state.Salary)
	if ws.Salary == nil {
		ws.Salary = []models.SalaryRecord{}
	}
	return ws
}

// Select switches the worksheet to date and loads it. A stored draft for the
// date takes the place of the collaborator's overtime and salary records.
func (m *Manager) Select(ctx context.Context, date string) (models.Worksheet, error) {
	if date == "" {
		return m.Snapshot(), ErrNoDate
	}
	normalized, err := timeutil.ParseDate(date)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return m.load(ctx, normalized, false)
}

// Refresh reloads the current date. Unsaved edits are kept and reconciled
// against the fresh manpower data.
func (m *Manager) Refresh(ctx context.Context) (models.Worksheet, error) {
	m.mu.Lock()
	date := m.state.Date
	m.mu.Unlock()

	if date == "" {
		return m.Snapshot(), ErrNoDate
	}
	return m.load(ctx, date, true)
}

// base is the "existing" side that manpower gets merged into
type base struct {
	overtime   []models.OvertimeRecord
	salary     []models.SalaryRecord
	dirty      bool
	// haveSalary is false when salary still has to be fetched
	haveSalary bool
}

func (m *Manager) load(ctx context.Context, date string, refresh bool) (models.Worksheet, error) {
	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.state.Phase = models.PhaseFetchingOvertime
	var existing base
	if refresh && m.state.Dirty && m.state.Date == date {
		existing = base{
			overtime:   reconcile.CloneOvertimeRecords(m.state.Overtime),
			salary:     reconcile.CloneSalaryRecords(m.state.Salary),
			dirty:      true,
			haveSalary: true,
		}
	}
	m.mu.Unlock()
	m.notifyPhase(date, models.PhaseFetchingOvertime)

	logger := m.logger.With(zap.String("date", date), zap.Uint64("generation", gen))
	logger.Debug("loading worksheet", zap.Bool("refresh", refresh))

	if !existing.dirty {
		draft, err := m.drafts.LoadDraft(ctx, date)
		if err != nil {
			logger.Warn("failed to load draft, using collaborator data", zap.Error(err))
		}
		if draft != nil {
			existing = base{
				overtime:   draft.Overtime,
				salary:     draft.Salary,
				dirty:      true,
				haveSalary: true,
			}
		} else {
			sheet, err := m.collab.Overtime(ctx, date)
			if err != nil {
				return m.fail(gen, date, "fetch overtime", err)
			}
			existing.overtime = sheet.Records
		}
	}

	if !m.advance(gen, models.PhaseFetchingManpower) {
		return m.discard(gen, logger)
	}
	m.notifyPhase(date, models.PhaseFetchingManpower)

	manpower, err := m.collab.ManpowerSummary(ctx, date)
	if err != nil {
		return m.fail(gen, date, "fetch manpower", err)
	}

	if !existing.haveSalary {
		sheet, err := m.collab.Salary(ctx, date)
		if err != nil {
			return m.fail(gen, date, "fetch salary", err)
		}
		existing.salary = sheet.Records
	}

	rates, mapping, err := m.rates.SalaryRates(ctx)
	if err != nil {
		logger.Warn("failed to load salary rates, using defaults", zap.Error(err))
		rates, mapping = reconcile.DefaultRateTable(), reconcile.DefaultSectionMapping()
	}

	overtime := reconcile.RecomputeOvertimeRecords(reconcile.MergeManpowerIntoOvertime(existing.overtime, manpower))
	salary := reconcile.EnsureSalarySections(existing.salary, manpower, mapping, rates)
	salary = reconcile.SyncSalaryWorkerCountsFromManpower(salary, manpower, mapping)

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return m.discard(gen, logger)
	}
	m.state = models.Worksheet{
		Date:            date,
		Phase:           models.PhaseReady,
		Generation:      gen,
		Manpower:        append([]models.ManpowerSection{}, manpower...),
		Overtime:        overtime,
		OvertimeSummary: reconcile.SummarizeOvertime(overtime),
		Salary:          salary,
		SalarySummary:   reconcile.SummarizeSalary(salary),
		Dirty:           existing.dirty,
		UpdatedAt:       timeutil.Now(),
	}
	m.hasData = true
	m.revision++
	snap := m.snapshotLocked()
	m.mu.Unlock()

	logger.Info("worksheet ready",
		zap.Int("sections", len(overtime)),
		zap.Bool("dirty", existing.dirty))
	m.notifyPhase(date, models.PhaseReady)
	return snap, nil
}

// advance moves to the next fetch phase if gen is still current
func (m *Manager) advance(gen uint64, phase models.WorksheetPhase) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return false
	}
	m.state.Phase = phase
	return true
}

func (m *Manager) discard(gen uint64, logger *zap.Logger) (models.Worksheet, error) {
	metrics.StaleFetchesDiscarded.Inc()
	logger.Debug("discarding stale fetch result")
	return m.Snapshot(), ErrSuperseded
}

// fail keeps the last good state, restores its phase and records the error
func (m *Manager) fail(gen uint64, date, step string, err error) (models.Worksheet, error) {
	wrapped := fmt.Errorf("%s for %s: %w", step, date, err)

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		metrics.StaleFetchesDiscarded.Inc()
		return m.Snapshot(), ErrSuperseded
	}
	if m.hasData {
		m.state.Phase = models.PhaseReady
	} else {
		m.state.Phase = models.PhaseIdle
	}
	m.state.LastError = upstream.UserMessage(err)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Error("worksheet fetch failed",
		zap.String("date", date),
		zap.String("step", step),
		zap.Error(err))
	m.notifier.Notify(models.Notification{
		Type:    models.NotificationError,
		Level:   "error",
		Date:    date,
		Phase:   snap.Phase,
		Message: fmt.Sprintf("Failed to %s: %s", step, snap.LastError),
		Time:    timeutil.Now(),
	})
	return snap, wrapped
}

func (m *Manager) notifyPhase(date string, phase models.WorksheetPhase) {
	m.notifier.Notify(models.Notification{
		Type:  models.NotificationPhase,
		Level: "info",
		Date:  date,
		Phase: phase,
		Time:  timeutil.Now(),
	})
}

// IsUpstream reports whether err came from a collaborator call
func IsUpstream(err error) bool {
	return errors.Is(err, upstream.ErrTransport) || errors.Is(err, upstream.ErrAPI)
}
