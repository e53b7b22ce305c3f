package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the web front-end.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Port        int    `mapstructure:"PORT"`

	BackendAPIURL    string `mapstructure:"BACKEND_API_URL"`
	MLAPIURL         string `mapstructure:"ML_API_URL"`
	PredictionAPIURL string `mapstructure:"PREDICTION_API_URL"`
	ListingBaseURL   string `mapstructure:"LISTING_BASE_URL"`

	ItemsPerPage      int           `mapstructure:"ITEMS_PER_PAGE"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	RedisAddress  string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	PredictionRateLimit float64 `mapstructure:"PREDICTION_RATE_LIMIT"`
	PredictionRateBurst int     `mapstructure:"PREDICTION_RATE_BURST"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads configuration from an optional config.env file and the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.PredictionAPIURL == "" {
		cfg.PredictionAPIURL = cfg.BackendAPIURL
	}
	cfg.BackendAPIURL = strings.TrimRight(cfg.BackendAPIURL, "/")
	cfg.MLAPIURL = strings.TrimRight(cfg.MLAPIURL, "/")
	cfg.PredictionAPIURL = strings.TrimRight(cfg.PredictionAPIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "rentalai-web")
	v.SetDefault("PORT", 3000)
	v.SetDefault("BACKEND_API_URL", "http://localhost:5000/api")
	v.SetDefault("ML_API_URL", "http://localhost:5001/api")
	v.SetDefault("PREDICTION_API_URL", "")
	v.SetDefault("LISTING_BASE_URL", "https://www.realtor.ca/")
	v.SetDefault("ITEMS_PER_PAGE", 4)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("PREDICTION_RATE_LIMIT", 2.0)
	v.SetDefault("PREDICTION_RATE_BURST", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"BACKEND_API_URL":    c.BackendAPIURL,
		"ML_API_URL":         c.MLAPIURL,
		"PREDICTION_API_URL": c.PredictionAPIURL,
		"LISTING_BASE_URL":   c.ListingBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("config: ITEMS_PER_PAGE must be positive, got %d", c.ItemsPerPage)
	}
	if c.Port <= 0 {
		return fmt.Errorf("config: PORT must be positive, got %d", c.Port)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
