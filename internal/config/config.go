package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// TicksURL locates the tick CSV export to fetch.
	TicksURL string `envconfig:"TICKS_URL"`

	// ReportYear is the reporting period. Zero means "the current year",
	// resolved at startup.
	ReportYear int `envconfig:"REPORT_YEAR"`

	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"1h"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Kafka publishing is optional; it is enabled when brokers are set.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"tick-reports"`
}

// KafkaEnabled reports whether finished reports should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.TicksURL == "" {
		return nil, errors.New("TICKS_URL is required")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}
	if cfg.FetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return &cfg, nil
}
