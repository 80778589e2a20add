package job

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redwanJemal/renderforge/internal/core/template"
)

// Table is the in-memory job store. Every mutation happens under the write
// lock so readers always observe a record with all fields of a transition
// published together.
type Table struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewTable() *Table {
	return &Table{records: make(map[string]*Record)}
}

// Create allocates a new queued record with a fresh id.
func (t *Table) Create(templateID string, format template.Format) Record {
	rec := &Record{
		ID:         uuid.NewString(),
		State:      StateQueued,
		TemplateID: templateID,
		Format:     format,
		CreatedAt:  time.Now(),
	}

	t.mu.Lock()
	t.records[rec.ID] = rec
	t.mu.Unlock()

	return *rec
}

// Get returns a copy of the record, taken under the lock.
func (t *Table) Get(id string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Len returns the number of resident records.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// StartRendering moves a queued job into the rendering state with zero
// progress.
func (t *Table) StartRendering(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok || rec.State != StateQueued {
		return
	}
	rec.State = StateRendering
	rec.Progress = 0
}

// SetProgress updates a rendering job's progress. Values are clamped to
// [0,100] and never regress.
func (t *Table) SetProgress(id string, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok || rec.State != StateRendering {
		return
	}
	if progress > rec.Progress {
		rec.Progress = progress
	}
}

// Complete publishes the terminal complete state: full progress, the output
// location and the completion timestamp, all in one transition.
func (t *Table) Complete(id, outputLocation string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok || rec.State.Terminal() {
		return
	}
	now := time.Now()
	rec.State = StateComplete
	rec.Progress = 100
	rec.OutputLocation = outputLocation
	rec.CompletedAt = &now
}

// Fail publishes the terminal failed state with the captured reason. The
// output location stays unset.
func (t *Table) Fail(id, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[id]
	if !ok || rec.State.Terminal() {
		return
	}
	now := time.Now()
	rec.State = StateFailed
	rec.Error = reason
	rec.CompletedAt = &now
}
