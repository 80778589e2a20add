package cmd

import (
	"context"
	"fmt"

	"github.com/redwanJemal/renderforge/internal/config"
	"github.com/redwanJemal/renderforge/internal/server"
	"github.com/urfave/cli/v3"
)

func serverCmd() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the render API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "Directory for completed render outputs",
				Sources: cli.EnvVars("RF_STORAGE_OUTPUT_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.IsSet("log-level") {
				cfg.Logging.Level = cmd.String("log-level")
			}

			if v := cmd.String("output-dir"); v != "" {
				// Keep the derived preview cache location next to the
				// overridden output dir unless it was set explicitly.
				if cfg.Storage.PreviewCacheDir == cfg.Storage.OutputDir+"/.preview-cache" {
					cfg.Storage.PreviewCacheDir = v + "/.preview-cache"
				}
				cfg.Storage.OutputDir = v
			}

			return server.Run(ctx, cfg)
		},
	}
}
