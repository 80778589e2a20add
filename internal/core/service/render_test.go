package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redwanJemal/renderforge/internal/core/compositor"
	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/render"
	"github.com/redwanJemal/renderforge/internal/core/schema"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderFixture(t *testing.T, engine compositor.Engine) (*RenderService, *job.Table, string) {
	t.Helper()
	catalog, err := template.NewCatalog(template.BuiltinTemplates()...)
	require.NoError(t, err)

	outputDir := t.TempDir()
	table := job.NewTable()
	executor := render.NewExecutor(engine, table, outputDir)
	return NewRenderService(catalog, table, executor), table, outputDir
}

func TestSubmitUnknownTemplate(t *testing.T) {
	svc, table, _ := newRenderFixture(t, &scriptEngine{})

	_, err := svc.Submit(SubmitRequest{TemplateID: "no-such-template"})
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "available:")
	assert.Zero(t, table.Len(), "validation failures must not create jobs")
}

func TestSubmitUnsupportedFormat(t *testing.T) {
	partial := template.Definition{
		Meta: template.Meta{
			ID:               "partial",
			SupportedFormats: []template.Format{template.FormatStory, template.FormatLandscape},
			DurationInFrames: 60,
			FPS:              30,
		},
		Schema: schema.Schema{},
	}
	catalog, err := template.NewCatalog(partial)
	require.NoError(t, err)

	table := job.NewTable()
	svc := NewRenderService(catalog, table, render.NewExecutor(&scriptEngine{}, table, t.TempDir()))

	// Unknown format name.
	_, err = svc.Submit(SubmitRequest{TemplateID: "partial", Format: "square"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, table.Len())

	// Known format the template does not declare.
	_, err = svc.Submit(SubmitRequest{TemplateID: "partial", Format: template.FormatPost})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "story, landscape")
	assert.Zero(t, table.Len())
}

func TestSubmitInvalidOutputFormat(t *testing.T) {
	svc, table, _ := newRenderFixture(t, &scriptEngine{})

	_, err := svc.Submit(SubmitRequest{TemplateID: "product-launch", OutputFormat: "avi"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, table.Len())
}

func TestSubmitInvalidProps(t *testing.T) {
	svc, table, _ := newRenderFixture(t, &scriptEngine{})

	_, err := svc.Submit(SubmitRequest{
		TemplateID: "testimonial",
		Props:      map[string]any{"rating": 11.0},
	})
	var perr *schema.ValidationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "rating", perr.Field)
	assert.Zero(t, table.Len())
}

func TestSubmitLifecycle(t *testing.T) {
	renderGate := make(chan struct{})
	engine := &scriptEngine{
		video: func(_ context.Context, _ compositor.Target, _ compositor.Codec, onProgress compositor.ProgressFunc) ([]byte, error) {
			<-renderGate
			onProgress(0.5)
			onProgress(1)
			return []byte("encoded"), nil
		},
	}
	svc, _, outputDir := newRenderFixture(t, engine)

	rec, err := svc.Submit(SubmitRequest{TemplateID: "product-launch", Format: template.FormatStory})
	require.NoError(t, err)
	assert.Equal(t, job.StateQueued, rec.State)

	// The executor picks the job up and holds in rendering while the
	// compositor is busy.
	require.Eventually(t, func() bool {
		got, err := svc.Status(rec.ID)
		return err == nil && got.State == job.StateRendering
	}, 2*time.Second, time.Millisecond)

	got, err := svc.Status(rec.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Progress, 0)
	assert.LessOrEqual(t, got.Progress, 100)

	close(renderGate)

	require.Eventually(t, func() bool {
		got, err := svc.Status(rec.ID)
		return err == nil && got.State == job.StateComplete
	}, 2*time.Second, time.Millisecond)

	got, err = svc.Status(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, filepath.Join(outputDir, rec.ID+".mp4"), got.OutputLocation)

	// Terminal fields stay frozen across repeated polls.
	again, err := svc.Status(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSubmitFailedJobStaysFailed(t *testing.T) {
	engine := &scriptEngine{
		video: func(context.Context, compositor.Target, compositor.Codec, compositor.ProgressFunc) ([]byte, error) {
			return nil, errors.New("codec unavailable")
		},
	}
	svc, _, _ := newRenderFixture(t, engine)

	rec, err := svc.Submit(SubmitRequest{TemplateID: "announcement"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := svc.Status(rec.ID)
		return err == nil && got.State == job.StateFailed
	}, 2*time.Second, time.Millisecond)

	got, _ := svc.Status(rec.ID)
	assert.Contains(t, got.Error, "codec unavailable")
	assert.Empty(t, got.OutputLocation)
}

func TestStatusUnknownJob(t *testing.T) {
	svc, _, _ := newRenderFixture(t, &scriptEngine{})
	_, err := svc.Status("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDownload(t *testing.T) {
	svc, table, outputDir := newRenderFixture(t, &scriptEngine{})

	_, _, err := svc.Download("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)

	rec := table.Create("product-launch", template.FormatStory)
	_, _, err = svc.Download(rec.ID)
	assert.ErrorIs(t, err, ErrNotReady)

	outputPath := filepath.Join(outputDir, rec.ID+".mp4")
	require.NoError(t, os.WriteFile(outputPath, []byte("encoded"), 0o644))
	table.StartRendering(rec.ID)
	table.Complete(rec.ID, outputPath)

	path, filename, err := svc.Download(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
	assert.Equal(t, "product-launch-story.mp4", filename)

	// Simulate the janitor reclaiming the artifact: the condition is
	// distinct from both not-found and not-ready.
	require.NoError(t, os.Remove(outputPath))
	_, _, err = svc.Download(rec.ID)
	assert.ErrorIs(t, err, ErrOutputReclaimed)
	assert.NotErrorIs(t, err, ErrNotReady)
}
