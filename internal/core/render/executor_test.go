package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redwanJemal/renderforge/internal/core/compositor"
	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/core/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptEngine is a compositor fake whose behavior is composed per test.
type scriptEngine struct {
	prepare func(ctx context.Context, templateID string, onProgress compositor.ProgressFunc) (compositor.Handle, error)
	selectT func(ctx context.Context, h compositor.Handle, compositionID string, props map[string]any) (compositor.Target, error)
	still   func(ctx context.Context, t compositor.Target, frame int) ([]byte, error)
	video   func(ctx context.Context, t compositor.Target, codec compositor.Codec, onProgress compositor.ProgressFunc) ([]byte, error)
}

func (s *scriptEngine) Prepare(ctx context.Context, templateID string, onProgress compositor.ProgressFunc) (compositor.Handle, error) {
	if s.prepare != nil {
		return s.prepare(ctx, templateID, onProgress)
	}
	return compositor.Handle{Location: "/tmp/bundle"}, nil
}

func (s *scriptEngine) SelectTarget(ctx context.Context, h compositor.Handle, compositionID string, props map[string]any) (compositor.Target, error) {
	if s.selectT != nil {
		return s.selectT(ctx, h, compositionID, props)
	}
	return compositor.Target{Bundle: h.Location, CompositionID: compositionID, Props: props}, nil
}

func (s *scriptEngine) RenderStill(ctx context.Context, t compositor.Target, frame int) ([]byte, error) {
	if s.still != nil {
		return s.still(ctx, t, frame)
	}
	return []byte("png"), nil
}

func (s *scriptEngine) RenderVideo(ctx context.Context, t compositor.Target, codec compositor.Codec, onProgress compositor.ProgressFunc) ([]byte, error) {
	if s.video != nil {
		return s.video(ctx, t, codec, onProgress)
	}
	return []byte("video"), nil
}

func testTask(rec job.Record) Task {
	def := template.BuiltinTemplates()[0]
	return Task{
		JobID:        rec.ID,
		Definition:   def,
		Format:       template.FormatStory,
		Theme:        theme.Get("default"),
		Props:        def.DefaultProps(),
		OutputFormat: OutputMP4,
	}
}

func TestExecutorSuccess(t *testing.T) {
	table := job.NewTable()
	outputDir := t.TempDir()

	var sampled []int
	engine := &scriptEngine{}
	exec := NewExecutor(engine, table, outputDir)

	rec := table.Create("product-launch", template.FormatStory)
	task := testTask(rec)

	engine.prepare = func(_ context.Context, templateID string, onProgress compositor.ProgressFunc) (compositor.Handle, error) {
		assert.Equal(t, "product-launch", templateID)
		for _, p := range []float64{0, 0.5, 1} {
			onProgress(p)
			got, _ := table.Get(rec.ID)
			sampled = append(sampled, got.Progress)
		}
		return compositor.Handle{Location: "/tmp/bundle"}, nil
	}
	engine.video = func(_ context.Context, target compositor.Target, codec compositor.Codec, onProgress compositor.ProgressFunc) ([]byte, error) {
		assert.Equal(t, "product-launch-story", target.CompositionID)
		assert.Equal(t, compositor.CodecH264, codec)
		for _, p := range []float64{0.5, 1} {
			onProgress(p)
			got, _ := table.Get(rec.ID)
			sampled = append(sampled, got.Progress)
		}
		return []byte("encoded"), nil
	}

	exec.run(context.Background(), task)

	// Preparation maps to 0-30, rendering to 30-100.
	assert.Equal(t, []int{0, 15, 30, 65, 100}, sampled)

	got, ok := table.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, job.StateComplete, got.State)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, filepath.Join(outputDir, rec.ID+".mp4"), got.OutputLocation)
	require.NotNil(t, got.CompletedAt)

	data, err := os.ReadFile(got.OutputLocation)
	require.NoError(t, err)
	assert.Equal(t, []byte("encoded"), data)
}

func TestExecutorCompositorFailure(t *testing.T) {
	table := job.NewTable()
	engine := &scriptEngine{
		video: func(context.Context, compositor.Target, compositor.Codec, compositor.ProgressFunc) ([]byte, error) {
			return nil, errors.New("renderer crashed")
		},
	}
	exec := NewExecutor(engine, table, t.TempDir())

	rec := table.Create("product-launch", template.FormatStory)
	exec.run(context.Background(), testTask(rec))

	got, _ := table.Get(rec.ID)
	assert.Equal(t, job.StateFailed, got.State)
	assert.Contains(t, got.Error, "renderer crashed")
	assert.Empty(t, got.OutputLocation)
}

func TestExecutorPanicBecomesFailedJob(t *testing.T) {
	table := job.NewTable()
	engine := &scriptEngine{
		prepare: func(context.Context, string, compositor.ProgressFunc) (compositor.Handle, error) {
			panic("bundler went sideways")
		},
	}
	exec := NewExecutor(engine, table, t.TempDir())

	rec := table.Create("product-launch", template.FormatStory)
	exec.run(context.Background(), testTask(rec))

	got, _ := table.Get(rec.ID)
	assert.Equal(t, job.StateFailed, got.State)
	assert.Contains(t, got.Error, "bundler went sideways")
}

func TestExecutorJobIsolation(t *testing.T) {
	table := job.NewTable()
	outputDir := t.TempDir()

	good := table.Create("product-launch", template.FormatStory)
	bad := table.Create("product-launch", template.FormatStory)

	okEngine := &scriptEngine{}
	failEngine := &scriptEngine{
		video: func(context.Context, compositor.Target, compositor.Codec, compositor.ProgressFunc) ([]byte, error) {
			return nil, errors.New("out of memory")
		},
	}

	NewExecutor(failEngine, table, outputDir).run(context.Background(), testTask(bad))
	NewExecutor(okEngine, table, outputDir).run(context.Background(), testTask(good))

	gotGood, _ := table.Get(good.ID)
	gotBad, _ := table.Get(bad.ID)
	assert.Equal(t, job.StateComplete, gotGood.State)
	assert.Equal(t, job.StateFailed, gotBad.State)
	assert.Empty(t, gotGood.Error)
}

func TestOutputFormatMapping(t *testing.T) {
	tests := []struct {
		format OutputFormat
		codec  compositor.Codec
		ext    string
	}{
		{OutputMP4, compositor.CodecH264, ".mp4"},
		{OutputWebM, compositor.CodecVP8, ".webm"},
		{OutputGIF, compositor.CodecGIF, ".gif"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.codec, tt.format.Codec())
		assert.Equal(t, tt.ext, tt.format.Ext())
		assert.True(t, tt.format.Valid())
	}
	assert.False(t, OutputFormat("avi").Valid())
}

func TestCompositionProps(t *testing.T) {
	props := map[string]any{"title": "Hello"}
	full := CompositionProps(props, theme.Get("dark"), template.FormatPost)

	assert.Equal(t, "Hello", full["title"])
	assert.Equal(t, "post", full["format"])
	assert.Equal(t, theme.Get("dark"), full["theme"])
	// The input bag is not mutated.
	assert.NotContains(t, props, "theme")
}
