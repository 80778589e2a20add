package cmd

import (
	"github.com/urfave/cli/v3"
)

var version = "dev"

func App() *cli.Command {
	return &cli.Command{
		Name:    "renderforge",
		Version: version,
		Usage:   "Dynamic video template engine. Render parameterized social videos and preview stills over HTTP.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
				Sources: cli.EnvVars("RENDERFORGE_CONFIG_PATH"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("RENDERFORGE_LOGGING_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			serverCmd(),
		},
	}
}
