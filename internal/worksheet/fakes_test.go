package worksheet

import (
	"context"
	"sync"

	"garment-backend/internal/models"
	"garment-backend/internal/reconcile"
	"garment-backend/internal/upstream"
)

type fakeCollab struct {
	mu sync.Mutex

	manpower map[string][]models.ManpowerSection
	overtime map[string][]models.OvertimeRecord
	salary   map[string][]models.SalaryRecord

	manpowerErr     error
	overtimeErr     error
	salaryErr       error
	saveOvertimeErr error
	saveSalaryErr   error

	// gate, when set, blocks ManpowerSummary for that date until closed
	gate map[string]chan struct{}

	savedOvertime []models.OvertimeSheet
	savedSalary   []models.SalarySheet
}

func newFakeCollab() *fakeCollab {
	return &fakeCollab{
		manpower: map[string][]models.ManpowerSection{},
		overtime: map[string][]models.OvertimeRecord{},
		salary:   map[string][]models.SalaryRecord{},
		gate:     map[string]chan struct{}{},
	}
}

func (f *fakeCollab) ManpowerSummary(ctx context.Context, date string) ([]models.ManpowerSection, error) {
	f.mu.Lock()
	gate := f.gate[date]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.manpowerErr != nil {
		return nil, f.manpowerErr
	}
	return append([]models.ManpowerSection{}, f.manpower[date]...), nil
}

func (f *fakeCollab) Overtime(ctx context.Context, date string) (models.OvertimeSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overtimeErr != nil {
		return models.OvertimeSheet{}, f.overtimeErr
	}
	return models.OvertimeSheet{Date: date, Records: reconcile.CloneOvertimeRecords(f.overtime[date])}, nil
}

func (f *fakeCollab) SaveOvertime(ctx context.Context, sheet models.OvertimeSheet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveOvertimeErr != nil {
		return f.saveOvertimeErr
	}
	f.savedOvertime = append(f.savedOvertime, sheet)
	f.overtime[sheet.Date] = reconcile.CloneOvertimeRecords(sheet.Records)
	return nil
}

func (f *fakeCollab) Salary(ctx context.Context, date string) (models.SalarySheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.salaryErr != nil {
		return models.SalarySheet{}, f.salaryErr
	}
	return models.SalarySheet{Date: date, Records: reconcile.CloneSalaryRecords(f.salary[date])}, nil
}

func (f *fakeCollab) SaveSalary(ctx context.Context, sheet models.SalarySheet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveSalaryErr != nil {
		return f.saveSalaryErr
	}
	f.savedSalary = append(f.savedSalary, sheet)
	f.salary[sheet.Date] = reconcile.CloneSalaryRecords(sheet.Records)
	return nil
}

func (f *fakeCollab) set(fn func(f *fakeCollab)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string]models.WorksheetDraft
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: map[string]models.WorksheetDraft{}}
}

func (d *memDrafts) LoadDraft(ctx context.Context, date string) (*models.WorksheetDraft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	draft, ok := d.drafts[date]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (d *memDrafts) SaveDraft(ctx context.Context, draft *models.WorksheetDraft) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[draft.Date] = *draft
	return nil
}

func (d *memDrafts) DeleteDraft(ctx context.Context, date string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, date)
	return nil
}

func (d *memDrafts) has(date string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.drafts[date]
	return ok
}

type memRecorder struct {
	mu   sync.Mutex
	logs []models.WorksheetSaveLog
}

func (r *memRecorder) Create(ctx context.Context, log *models.WorksheetSaveLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = len(r.logs) + 1
	r.logs = append(r.logs, *log)
	return nil
}

type memNotifier struct {
	mu    sync.Mutex
	items []models.Notification
}

func (n *memNotifier) Notify(item models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *memNotifier) ofType(kind string) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, item := range n.items {
		if item.Type == kind {
			out = append(out, item)
		}
	}
	return out
}

type stubArchiver struct {
	key  string
	err  error
	seen []string
}

func (a *stubArchiver) ArchiveWorksheet(ctx context.Context, ws models.Worksheet) (string, error) {
	a.seen = append(a.seen, ws.Date)
	return a.key, a.err
}

var errDown = &upstream.TransportError{Endpoint: upstream.EndpointManpowerSummary, Err: context.DeadlineExceeded}

// gatedSaves holds SaveOvertime until release is closed, signalling started first
type gatedSaves struct {
	*fakeCollab
	started chan struct{}
	release chan struct{}
}

func newGatedSaves(f *fakeCollab) *gatedSaves {
	return &gatedSaves{fakeCollab: f, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedSaves) SaveOvertime(ctx context.Context, sheet models.OvertimeSheet) error {
	close(g.started)
	<-g.release
	return g.fakeCollab.SaveOvertime(ctx, sheet)
}
