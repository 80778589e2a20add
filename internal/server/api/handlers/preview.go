package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redwanJemal/renderforge/internal/core/schema"
	"github.com/redwanJemal/renderforge/internal/core/service"
	"github.com/redwanJemal/renderforge/internal/core/template"
)

type PreviewHandler struct {
	svc *service.PreviewService
}

func NewPreviewHandler(svc *service.PreviewService) *PreviewHandler {
	return &PreviewHandler{svc: svc}
}

// Still renders one frame as PNG.
//
// Query params: template, format (story|post|landscape), theme, props
// (JSON-encoded), frame (default 0).
func (h *PreviewHandler) Still(c echo.Context) error {
	templateID := c.QueryParam("template")
	if templateID == "" {
		return c.JSON(http.StatusBadRequest, errorBody("Missing template parameter", ""))
	}

	props := map[string]any{}
	if propsJSON := c.QueryParam("props"); propsJSON != "" {
		if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("Invalid props JSON", err.Error()))
		}
	}

	frame := 0
	if frameStr := c.QueryParam("frame"); frameStr != "" {
		if n, err := strconv.Atoi(frameStr); err == nil {
			frame = n
		}
	}

	data, err := h.svc.Still(c.Request().Context(), service.PreviewRequest{
		TemplateID: templateID,
		Format:     template.Format(c.QueryParam("format")),
		ThemeID:    c.QueryParam("theme"),
		Props:      props,
		Frame:      frame,
	})
	if err != nil {
		var verr *service.ValidationError
		var perr *schema.ValidationError
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			return c.JSON(http.StatusNotFound, errorBody("Template not found", err.Error()))
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, errorBody("Invalid request", verr.Message))
		case errors.As(err, &perr):
			return c.JSON(http.StatusBadRequest, errorBody("Invalid props", perr.Error()))
		}
		return c.JSON(http.StatusInternalServerError, errorBody("Preview generation failed", err.Error()))
	}

	return c.Blob(http.StatusOK, "image/png", data)
}
