// Package compositor defines the boundary with the external frame
// compositor: the engine that turns a template, a property bag and a
// frame/format selection into pixels or an encoded video. The engine is
// invoked as a black box; this package never interprets its output beyond
// progress and result framing.
package compositor

import (
	"context"
)

// ProgressFunc receives fractional progress in [0,1] for a long-running
// phase. Implementations may call it from another goroutine; callbacks must
// be cheap and must not block.
type ProgressFunc func(progress float64)

// Handle identifies a prepared (bundled) template inside the engine.
type Handle struct {
	Location string
}

// Target is a selected composition ready to render: a prepared bundle plus
// the composition id and the fully merged property bag.
type Target struct {
	Bundle        string
	CompositionID string
	Props         map[string]any
}

// Codec selects the video encoder for full renders.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecVP8  Codec = "vp8"
	CodecGIF  Codec = "gif"
)

// Engine is the compositor contract. Prepare and RenderVideo are
// long-running and report fractional progress; RenderStill renders a single
// frame. All failures surface as ordinary errors; callers own the decision
// of what a failure does to their job or cache state.
type Engine interface {
	Prepare(ctx context.Context, templateID string, onProgress ProgressFunc) (Handle, error)
	SelectTarget(ctx context.Context, h Handle, compositionID string, props map[string]any) (Target, error)
	RenderStill(ctx context.Context, t Target, frame int) ([]byte, error)
	RenderVideo(ctx context.Context, t Target, codec Codec, onProgress ProgressFunc) ([]byte, error)
}
