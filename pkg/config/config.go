// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the bot needs at startup. It is loaded once in main
// and passed into constructors; nothing reads the environment after Load.
type Config struct {
	// TelegramToken is the bot credential. Startup fails without it.
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	// LinkHosts are the URL markers that make a message a download request.
	LinkHosts []string `env:"JOSS_LINK_HOSTS" envSeparator:"," envDefault:"tiktok.com"`

	// MaxImages caps how many carousel images are attempted per request.
	MaxImages int `env:"JOSS_MAX_IMAGES" envDefault:"10"`

	// MaxCarouselDuration is the classifier threshold in seconds: posts at or
	// above it are treated as videos regardless of thumbnail count.
	MaxCarouselDuration float64 `env:"JOSS_MAX_DURATION" envDefault:"5"`

	// HTTPTimeout bounds each thumbnail image download.
	HTTPTimeout time.Duration `env:"JOSS_HTTP_TIMEOUT" envDefault:"10s"`

	// FetchTimeout bounds each extraction-service run (metadata or download).
	FetchTimeout time.Duration `env:"JOSS_FETCH_TIMEOUT" envDefault:"5m"`

	// FFmpegBin is the transcoder binary name or path.
	FFmpegBin string `env:"JOSS_FFMPEG" envDefault:"ffmpeg"`

	LogLevel string `env:"JOSS_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and validates required fields.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.MaxImages <= 0 {
		return nil, fmt.Errorf("JOSS_MAX_IMAGES must be positive, got %d", cfg.MaxImages)
	}
	return &cfg, nil
}
