package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Storage    StorageConfig    `koanf:"storage"`
	Compositor CompositorConfig `koanf:"compositor"`
	Retention  RetentionConfig  `koanf:"retention"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type StorageConfig struct {
	OutputDir       string `koanf:"output_dir"`
	PreviewCacheDir string `koanf:"preview_cache_dir"`
}

type CompositorConfig struct {
	Binary     string `koanf:"binary"`
	Entrypoint string `koanf:"entrypoint"`
}

type RetentionConfig struct {
	RenderTTL    string `koanf:"render_ttl"`
	RenderSweep  string `koanf:"render_sweep"`
	PreviewTTL   string `koanf:"preview_ttl"`
	PreviewSweep string `koanf:"preview_sweep"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load reads config from TOML file (if provided) then overlays env vars.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	// 2. Load TOML config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load env vars: RF_SERVER_PORT -> server.port
	// Only set env vars that have non-empty values to avoid overriding TOML config.
	if err := k.Load(env.ProviderWithValue("RF_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		mapped := strings.Replace(
			strings.ToLower(strings.TrimPrefix(key, "RF_")),
			"_", ".", -1,
		)
		return mapped, value
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Derive the preview cache dir from the output dir if not configured
	if cfg.Storage.PreviewCacheDir == "" {
		cfg.Storage.PreviewCacheDir = cfg.Storage.OutputDir + "/.preview-cache"
	}

	return &cfg, nil
}

// RenderTTLDuration returns the render retention window, falling back to an
// hour when the configured value does not parse.
func (c *Config) RenderTTLDuration() time.Duration {
	return parseDuration(c.Retention.RenderTTL, time.Hour)
}

func (c *Config) RenderSweepDuration() time.Duration {
	return parseDuration(c.Retention.RenderSweep, 10*time.Minute)
}

func (c *Config) PreviewTTLDuration() time.Duration {
	return parseDuration(c.Retention.PreviewTTL, 30*time.Minute)
}

func (c *Config) PreviewSweepDuration() time.Duration {
	return parseDuration(c.Retention.PreviewSweep, 5*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
