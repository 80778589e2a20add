package config

import (
	"github.com/knadh/koanf/v2"
)

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"server.host": "0.0.0.0",
		"server.port": 3100,

		"storage.output_dir":        "output",
		"storage.preview_cache_dir": "",

		"compositor.binary":     "renderforge-compositor",
		"compositor.entrypoint": "src/Root.tsx",

		"retention.render_ttl":    "1h",
		"retention.render_sweep":  "10m",
		"retention.preview_ttl":   "30m",
		"retention.preview_sweep": "5m",

		"logging.level":  "info",
		"logging.format": "pretty",
	}

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return err
		}
	}
	return nil
}
