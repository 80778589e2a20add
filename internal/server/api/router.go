package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redwanJemal/renderforge/internal/core/service"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/server/api/handlers"
	"github.com/rs/zerolog/log"
)

type RouterConfig struct {
	Catalog    *template.Catalog
	RenderSvc  *service.RenderService
	PreviewSvc *service.PreviewService
}

func SetupRouter(e *echo.Echo, cfg RouterConfig) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
	}))
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(20)))
	e.Use(requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	config := huma.DefaultConfig("RenderForge API", "1.0.0")
	config.Info.Description = "Dynamic video template engine. Submit render jobs, poll their progress, and fetch preview frames."

	hapi := humaecho.New(e, config)

	templatesHandler := handlers.NewTemplatesHandler(cfg.Catalog)
	huma.Register(hapi, huma.Operation{
		OperationID: "list-templates",
		Method:      http.MethodGet,
		Path:        "/api/templates",
		Summary:     "List all templates",
		Tags:        []string{"Templates"},
	}, templatesHandler.List)

	huma.Register(hapi, huma.Operation{
		OperationID: "get-template",
		Method:      http.MethodGet,
		Path:        "/api/templates/{id}",
		Summary:     "Get a template with its form field descriptors",
		Tags:        []string{"Templates"},
	}, templatesHandler.Get)

	huma.Register(hapi, huma.Operation{
		OperationID: "list-themes",
		Method:      http.MethodGet,
		Path:        "/api/themes",
		Summary:     "List all themes",
		Tags:        []string{"Templates"},
	}, templatesHandler.Themes)

	renderHandler := handlers.NewRenderHandler(cfg.RenderSvc)
	huma.Register(hapi, huma.Operation{
		OperationID:   "submit-render",
		Method:        http.MethodPost,
		Path:          "/api/render",
		Summary:       "Submit a render job",
		Tags:          []string{"Render"},
		DefaultStatus: http.StatusAccepted,
	}, renderHandler.Submit)

	huma.Register(hapi, huma.Operation{
		OperationID: "get-render-job",
		Method:      http.MethodGet,
		Path:        "/api/render/{jobId}",
		Summary:     "Poll a render job",
		Tags:        []string{"Render"},
	}, renderHandler.Status)

	// Byte-serving routes stay on plain echo, outside the OpenAPI surface.
	e.GET("/api/render/:jobId/download", renderHandler.Download)

	previewHandler := handlers.NewPreviewHandler(cfg.PreviewSvc)
	e.GET("/api/preview", previewHandler.Still)
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request")
			return err
		}
	}
}
