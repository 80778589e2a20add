package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redwanJemal/renderforge/internal/config"
	"github.com/redwanJemal/renderforge/internal/core/compositor"
	"github.com/redwanJemal/renderforge/internal/core/janitor"
	"github.com/redwanJemal/renderforge/internal/core/job"
	"github.com/redwanJemal/renderforge/internal/core/preview"
	"github.com/redwanJemal/renderforge/internal/core/render"
	"github.com/redwanJemal/renderforge/internal/core/service"
	"github.com/redwanJemal/renderforge/internal/core/template"
	"github.com/redwanJemal/renderforge/internal/server/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run(ctx context.Context, cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Debug().Str("level", cfg.Logging.Level).Msg("log level configured")

	if err := os.MkdirAll(cfg.Storage.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Storage.PreviewCacheDir, 0o755); err != nil {
		return fmt.Errorf("preview cache dir: %w", err)
	}

	catalog, err := template.NewCatalog(template.BuiltinTemplates()...)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	log.Info().Int("templates", catalog.Count()).Msg("template catalog built")

	engine := compositor.NewCLIEngine(cfg.Compositor.Binary, cfg.Compositor.Entrypoint)

	table := job.NewTable()
	executor := render.NewExecutor(engine, table, cfg.Storage.OutputDir)
	renderSvc := service.NewRenderService(catalog, table, executor)

	previewCache := preview.NewCache(cfg.Storage.PreviewCacheDir)
	previewSvc := service.NewPreviewService(catalog, previewCache, engine)

	sweeper := janitor.New(
		janitor.Target{
			Name:     "renders",
			Dir:      cfg.Storage.OutputDir,
			TTL:      cfg.RenderTTLDuration(),
			Interval: cfg.RenderSweepDuration(),
		},
		janitor.Target{
			Name:     "previews",
			Dir:      cfg.Storage.PreviewCacheDir,
			TTL:      cfg.PreviewTTLDuration(),
			Interval: cfg.PreviewSweepDuration(),
		},
	)
	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	sweeper.Run(janitorCtx)

	e := echo.New()
	e.HideBanner = true

	api.SetupRouter(e, api.RouterConfig{
		Catalog:    catalog,
		RenderSvc:  renderSvc,
		PreviewSvc: previewSvc,
	})

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("render API listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	janitorCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	return nil
}
