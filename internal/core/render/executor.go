package render

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/redwanJemal/renderforge/internal/core/compositor"
	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/core/theme"
	"github.com/rs/zerolog/log"
)

// OutputFormat is the requested container/encoding for a full render.
type OutputFormat string

const (
	OutputMP4  OutputFormat = "mp4"
	OutputWebM OutputFormat = "webm"
	OutputGIF  OutputFormat = "gif"
)

// Valid reports whether the output format is one of the known encodings.
func (f OutputFormat) Valid() bool {
	return f == OutputMP4 || f == OutputWebM || f == OutputGIF
}

func (f OutputFormat) Codec() compositor.Codec {
	switch f {
	case OutputGIF:
		return compositor.CodecGIF
	case OutputWebM:
		return compositor.CodecVP8
	default:
		return compositor.CodecH264
	}
}

func (f OutputFormat) Ext() string {
	switch f {
	case OutputGIF:
		return ".gif"
	case OutputWebM:
		return ".webm"
	default:
		return ".mp4"
	}
}

// Task is everything the executor needs to drive one job: the validated
// inputs resolved at submission time.
type Task struct {
	JobID        string
	Definition   template.Definition
	Format       template.Format
	Theme        theme.Theme
	Props        map[string]any
	OutputFormat OutputFormat
}

// Executor drives jobs through the compositor, one goroutine per job. It is
// the only writer of a job's record once launched.
type Executor struct {
	engine    compositor.Engine
	table     *job.Table
	outputDir string
}

func NewExecutor(engine compositor.Engine, table *job.Table, outputDir string) *Executor {
	return &Executor{engine: engine, table: table, outputDir: outputDir}
}

// Launch starts the render in the background and returns immediately. The
// render runs on a context detached from the submitting request so it
// survives after the response is sent.
func (e *Executor) Launch(task Task) {
	go e.run(context.Background(), task)
}

func (e *Executor) run(ctx context.Context, task Task) {
	// A compositor fault must never escape this goroutine; it becomes the
	// job's terminal failed state.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("job_id", task.JobID).Any("panic", r).Msg("render panicked")
			e.table.Fail(task.JobID, fmt.Sprintf("render panicked: %v", r))
		}
	}()

	e.table.StartRendering(task.JobID)

	outputLocation, err := e.render(ctx, task)
	if err != nil {
		log.Warn().Str("job_id", task.JobID).Err(err).Msg("render failed")
		e.table.Fail(task.JobID, err.Error())
		return
	}

	e.table.Complete(task.JobID, outputLocation)
	log.Info().Str("job_id", task.JobID).Str("output", outputLocation).Msg("render complete")
}

func (e *Executor) render(ctx context.Context, task Task) (string, error) {
	// Bundling contributes the first 30 points, rendering the remaining 70.
	// Keeps the progress bar moving during the short preparation phase.
	handle, err := e.engine.Prepare(ctx, task.Definition.Meta.ID, func(p float64) {
		e.table.SetProgress(task.JobID, int(math.Round(p*30)))
	})
	if err != nil {
		return "", err
	}

	target, err := e.engine.SelectTarget(ctx, handle, task.Definition.CompositionID(task.Format), CompositionProps(task.Props, task.Theme, task.Format))
	if err != nil {
		return "", err
	}

	data, err := e.engine.RenderVideo(ctx, target, task.OutputFormat.Codec(), func(p float64) {
		e.table.SetProgress(task.JobID, 30+int(math.Round(p*70)))
	})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	outputLocation := filepath.Join(e.outputDir, task.JobID+task.OutputFormat.Ext())
	if err := os.WriteFile(outputLocation, data, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return outputLocation, nil
}

// CompositionProps builds the property bag handed to the compositor: the
// merged template props plus the resolved theme and format, matching what
// compositions expect as input.
func CompositionProps(props map[string]any, th theme.Theme, format template.Format) map[string]any {
	full := make(map[string]any, len(props)+2)
	for k, v := range props {
		full[k] = v
	}
	full["theme"] = th
	full["format"] = string(format)
	return full
}
