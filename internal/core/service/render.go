package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/render"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/core/theme"
	"github.com/rs/zerolog/log"
)

// RenderService owns the submission path: validate, allocate a job record,
// launch the executor. Polling and download read the job table only.
type RenderService struct {
	catalog  *template.Catalog
	table    *job.Table
	executor *render.Executor
}

func NewRenderService(catalog *template.Catalog, table *job.Table, executor *render.Executor) *RenderService {
	return &RenderService{catalog: catalog, table: table, executor: executor}
}

type SubmitRequest struct {
	TemplateID   string
	Props        map[string]any
	ThemeID      string
	Format       template.Format
	OutputFormat render.OutputFormat
}

// Submit validates the request and, only if every check passes, creates a
// queued job and launches its executor. Validation failures are synchronous
// and leave the job table untouched.
func (s *RenderService) Submit(req SubmitRequest) (job.Record, error) {
	if req.ThemeID == "" {
		req.ThemeID = "default"
	}
	if req.Format == "" {
		req.Format = template.FormatLandscape
	}
	if req.OutputFormat == "" {
		req.OutputFormat = render.OutputMP4
	}

	def, ok := s.catalog.Get(req.TemplateID)
	if !ok {
		return job.Record{}, fmt.Errorf("no template %q (available: %s): %w",
			req.TemplateID, strings.Join(s.catalog.IDs(), ", "), ErrTemplateNotFound)
	}

	if _, known := template.Formats[req.Format]; !known {
		return job.Record{}, &ValidationError{Message: fmt.Sprintf("invalid format %q", req.Format)}
	}
	if !def.SupportsFormat(req.Format) {
		return job.Record{}, &ValidationError{Message: fmt.Sprintf(
			"template %q does not support format %q (supported: %s)",
			req.TemplateID, req.Format, joinFormats(def.Meta.SupportedFormats))}
	}
	if !req.OutputFormat.Valid() {
		return job.Record{}, &ValidationError{Message: fmt.Sprintf("invalid output format %q", req.OutputFormat)}
	}

	merged, err := def.Schema.Apply(req.Props)
	if err != nil {
		return job.Record{}, err
	}

	rec := s.table.Create(req.TemplateID, req.Format)
	s.executor.Launch(render.Task{
		JobID:        rec.ID,
		Definition:   def,
		Format:       req.Format,
		Theme:        theme.Get(req.ThemeID),
		Props:        merged,
		OutputFormat: req.OutputFormat,
	})

	log.Info().Str("job_id", rec.ID).Str("template", req.TemplateID).
		Str("format", string(req.Format)).Msg("render job submitted")
	return rec, nil
}

// Status returns the current job record.
func (s *RenderService) Status(jobID string) (job.Record, error) {
	rec, ok := s.table.Get(jobID)
	if !ok {
		return job.Record{}, ErrJobNotFound
	}
	return rec, nil
}

// Download resolves a completed job to its artifact path and a download
// filename. A job that is not complete yet reports not-ready; a complete
// job whose file was swept reports reclaimed.
func (s *RenderService) Download(jobID string) (path, filename string, err error) {
	rec, ok := s.table.Get(jobID)
	if !ok {
		return "", "", ErrJobNotFound
	}
	if rec.State != job.StateComplete {
		return "", "", fmt.Errorf("job state is %q: %w", rec.State, ErrNotReady)
	}
	if rec.OutputLocation == "" {
		return "", "", ErrOutputReclaimed
	}
	if _, statErr := os.Stat(rec.OutputLocation); statErr != nil {
		return "", "", ErrOutputReclaimed
	}

	ext := rec.OutputLocation[strings.LastIndex(rec.OutputLocation, "."):]
	filename = fmt.Sprintf("%s-%s%s", rec.TemplateID, rec.Format, ext)
	return rec.OutputLocation, filename, nil
}

func joinFormats(formats []template.Format) string {
	parts := make([]string, len(formats))
	for i, f := range formats {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
