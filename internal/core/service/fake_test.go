package service

import (
	"context"

	"github.com/redwanJemal/renderforge/internal/core/compositor"
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
