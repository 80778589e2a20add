package service

import (
	"context"
	"fmt"
	"os"

	"github.com/redwanJemal/renderforge/internal/core/compositor"
	"github.com/redwanJemal/renderforge/internal/core/preview"
	"github.com/redwanJemal/renderforge/internal/core/render"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/core/theme"
	"github.com/rs/zerolog/log"
)

// PreviewService renders single frames through the single-flight cache.
type PreviewService struct {
	catalog *template.Catalog
	cache   *preview.Cache
	engine  compositor.Engine
}

func NewPreviewService(catalog *template.Catalog, cache *preview.Cache, engine compositor.Engine) *PreviewService {
	return &PreviewService{catalog: catalog, cache: cache, engine: engine}
}

type PreviewRequest struct {
	TemplateID string
	Format     template.Format
	ThemeID    string
	Props      map[string]any
	Frame      int
}

// Still returns the PNG bytes for one frame. Identical concurrent requests
// share one compositor invocation; repeated requests hit the disk cache.
func (s *PreviewService) Still(ctx context.Context, req PreviewRequest) ([]byte, error) {
	if req.Format == "" {
		req.Format = template.FormatLandscape
	}
	if req.ThemeID == "" {
		req.ThemeID = "default"
	}

	def, ok := s.catalog.Get(req.TemplateID)
	if !ok {
		return nil, fmt.Errorf("no template %q: %w", req.TemplateID, ErrTemplateNotFound)
	}
	if _, known := template.Formats[req.Format]; !known {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid format %q", req.Format)}
	}
	if !def.SupportsFormat(req.Format) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"template %q does not support format %q", req.TemplateID, req.Format)}
	}

	merged, err := def.Schema.Apply(req.Props)
	if err != nil {
		return nil, err
	}

	frame := req.Frame
	if frame < 0 {
		frame = 0
	}
	if max := def.Meta.DurationInFrames - 1; frame > max {
		frame = max
	}

	key := preview.DeriveKey(preview.KeyParams{
		TemplateID: req.TemplateID,
		Format:     req.Format,
		ThemeID:    req.ThemeID,
		Props:      merged,
		Frame:      frame,
	})

	th := theme.Get(req.ThemeID)
	computeStill := func(ctx context.Context) ([]byte, error) {
		handle, err := s.engine.Prepare(ctx, req.TemplateID, nil)
		if err != nil {
			return nil, err
		}
		target, err := s.engine.SelectTarget(ctx, handle, def.CompositionID(req.Format),
			render.CompositionProps(merged, th, req.Format))
		if err != nil {
			return nil, err
		}
		return s.engine.RenderStill(ctx, target, frame)
	}

	path, err := s.cache.GetOrCompute(ctx, key, computeStill)
	if err != nil {
		log.Warn().Str("template", req.TemplateID).Str("key", key).Err(err).Msg("preview render failed")
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// The janitor can reclaim the artifact between settle and read;
		// previews are cheap, so recompute once.
		path, err = s.cache.GetOrCompute(ctx, key, computeStill)
		if err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read preview artifact: %w", err)
	}
	return data, nil
}
