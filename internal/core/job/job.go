package job

import (
	"time"

	"github.com/redwanJemal/renderforge/internal/core/template"
)

// State is a render job's lifecycle state. Queued and Rendering are
// transient; Complete and Failed are terminal and immutable.
type State string

const (
	StateQueued    State = "queued"
	StateRendering State = "rendering"
	StateComplete  State = "complete"
	StateFailed    State = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

// Record is one render job's identity, state and progress. A record is
// written only by the executor that owns it and lives in the table for the
// life of the process; only output artifacts are ever reclaimed.
type Record struct {
	ID             string
	State          State
	TemplateID     string
	Format         template.Format
	Progress       int
	OutputLocation string
	Error          string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
