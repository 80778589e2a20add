package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/render"
	"github.com/redwanJemal/renderforge/internal/core/service"
	"github.com/redwanJemal/renderforge/internal/core/template"
)

type RenderHandler struct {
	svc *service.RenderService
}

func NewRenderHandler(svc *service.RenderService) *RenderHandler {
	return &RenderHandler{svc: svc}
}

type SubmitRenderInput struct {
	Body struct {
		TemplateID   string         `json:"templateId" minLength:"1" doc:"Template id"`
		Props        map[string]any `json:"props,omitempty" doc:"Template properties, merged over defaults"`
		Theme        string         `json:"theme,omitempty" doc:"Theme id (default: default)"`
		Format       string         `json:"format,omitempty" enum:"story,post,landscape" doc:"Output aspect preset"`
		OutputFormat string         `json:"outputFormat,omitempty" enum:"mp4,webm,gif" doc:"Video encoding"`
	}
}

type SubmitRenderBody struct {
	JobID   string `json:"jobId" doc:"Job id to poll"`
	Status  string `json:"status" doc:"Initial job status"`
	Message string `json:"message"`
}

type SubmitRenderOutput struct {
	Body SubmitRenderBody
}

func (h *RenderHandler) Submit(_ context.Context, input *SubmitRenderInput) (*SubmitRenderOutput, error) {
	rec, err := h.svc.Submit(service.SubmitRequest{
		TemplateID:   input.Body.TemplateID,
		Props:        input.Body.Props,
		ThemeID:      input.Body.Theme,
		Format:       template.Format(input.Body.Format),
		OutputFormat: render.OutputFormat(input.Body.OutputFormat),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &SubmitRenderOutput{Body: SubmitRenderBody{
		JobID:   rec.ID,
		Status:  string(rec.State),
		Message: "Render job submitted. Poll GET /api/render/{jobId} for status.",
	}}, nil
}

type JobIDInput struct {
	JobID string `path:"jobId" doc:"Job id"`
}

type JobBody struct {
	ID          string     `json:"id"`
	Status      string     `json:"status" enum:"queued,rendering,complete,failed"`
	TemplateID  string     `json:"templateId"`
	Format      string     `json:"format"`
	Progress    int        `json:"progress" minimum:"0" maximum:"100"`
	OutputPath  string     `json:"outputPath,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type JobOutput struct {
	Body JobBody
}

func newJobBody(rec job.Record) JobBody {
	return JobBody{
		ID:          rec.ID,
		Status:      string(rec.State),
		TemplateID:  rec.TemplateID,
		Format:      string(rec.Format),
		Progress:    rec.Progress,
		OutputPath:  rec.OutputLocation,
		Error:       rec.Error,
		CreatedAt:   rec.CreatedAt,
		CompletedAt: rec.CompletedAt,
	}
}

func (h *RenderHandler) Status(_ context.Context, input *JobIDInput) (*JobOutput, error) {
	rec, err := h.svc.Status(input.JobID)
	if err != nil {
		return nil, mapError(err)
	}
	return &JobOutput{Body: newJobBody(rec)}, nil
}

// Download streams the finished artifact. Not-ready and reclaimed are
// distinct conditions: the first means poll again, the second means the
// janitor already removed the file and the render must be resubmitted.
func (h *RenderHandler) Download(c echo.Context) error {
	path, filename, err := h.svc.Download(c.Param("jobId"))
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		return c.JSON(http.StatusNotFound, errorBody("Job not found", ""))
	case errors.Is(err, service.ErrNotReady):
		return c.JSON(http.StatusBadRequest, errorBody("Not ready", err.Error()))
	case errors.Is(err, service.ErrOutputReclaimed):
		return c.JSON(http.StatusGone, errorBody("Output no longer available", "The artifact was reclaimed. Submit a new render."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, errorBody("Internal server error", err.Error()))
	}
	return c.Attachment(path, filename)
}

func errorBody(title, detail string) map[string]string {
	body := map[string]string{"error": title}
	if detail != "" {
		body["message"] = detail
	}
	return body
}
