package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redwanJemal/renderforge/internal/core/schema"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/core/theme"
)

type TemplatesHandler struct {
	catalog *template.Catalog
}

func NewTemplatesHandler(catalog *template.Catalog) *TemplatesHandler {
	return &TemplatesHandler{catalog: catalog}
}

type TemplateSummary struct {
	template.Meta
	DefaultProps map[string]any `json:"defaultProps"`
}

type ListTemplatesOutput struct {
	Body []TemplateSummary
}

func (h *TemplatesHandler) List(_ context.Context, _ *struct{}) (*ListTemplatesOutput, error) {
	defs := h.catalog.List()
	out := make([]TemplateSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, TemplateSummary{Meta: d.Meta, DefaultProps: d.DefaultProps()})
	}
	return &ListTemplatesOutput{Body: out}, nil
}

type GetTemplateInput struct {
	ID string `path:"id" doc:"Template id"`
}

type TemplateDetailBody struct {
	template.Meta
	Fields       []schema.Field `json:"fields" doc:"Form field descriptors for the template's properties"`
	DefaultProps map[string]any `json:"defaultProps"`
}

type GetTemplateOutput struct {
	Body TemplateDetailBody
}

func (h *TemplatesHandler) Get(_ context.Context, input *GetTemplateInput) (*GetTemplateOutput, error) {
	def, ok := h.catalog.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound(fmt.Sprintf("no template %q", input.ID))
	}
	return &GetTemplateOutput{Body: TemplateDetailBody{
		Meta:         def.Meta,
		Fields:       def.Schema.Fields,
		DefaultProps: def.DefaultProps(),
	}}, nil
}

type ListThemesOutput struct {
	Body []theme.Theme
}

func (h *TemplatesHandler) Themes(_ context.Context, _ *struct{}) (*ListThemesOutput, error) {
	return &ListThemesOutput{Body: theme.All()}, nil
}
