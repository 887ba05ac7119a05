package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "PROCESSOR_"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	GatewaySimulated = "simulated"
	GatewayHTTP      = "http"

	NotifierLog       = "log"
	NotifierRecording = "recording"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Database  DatabaseConfig  `koanf:"database" validate:"-"`
	Gateway   GatewayConfig   `koanf:"gateway"`
	Retry     RetryConfig     `koanf:"retry"`
	Notifier  NotifierConfig  `koanf:"notifier"`
	Processor ProcessorConfig `koanf:"processor"`
	Worker    WorkerConfig    `koanf:"worker"`
	Logger    LoggerConfig    `koanf:"logger"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Tracing   TracingConfig   `koanf:"tracing"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes" validate:"required,min=1"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres"`
}

// DatabaseConfig is only validated when the storage driver is postgres.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
	HealthCheck     time.Duration `koanf:"health_check_period" validate:"required"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout" validate:"required"`
}

type GatewayConfig struct {
	Mode    string        `koanf:"mode" validate:"required,oneof=simulated http"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

type RetryConfig struct {
	BaseDelay   time.Duration `koanf:"base_delay" validate:"required"`
	MaxDelay    time.Duration `koanf:"max_delay" validate:"required,gtefield=BaseDelay"`
	MaxAttempts int           `koanf:"max_attempts" validate:"required,min=1"`
}

type NotifierConfig struct {
	Mode string `koanf:"mode" validate:"required,oneof=log recording"`
}

type ProcessorConfig struct {
	// PreSaveOrders persists the order before the gateway is called so failures are recorded.
	PreSaveOrders bool `koanf:"presave_orders"`
}

type WorkerConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Interval   time.Duration `koanf:"interval" validate:"required"`
	StaleAfter time.Duration `koanf:"stale_after" validate:"required"`
	BatchSize  int           `koanf:"batch_size" validate:"required,min=1"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path" validate:"required"`
	Namespace string `koanf:"namespace" validate:"required"`
}

type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	SampleRatio float64 `koanf:"sample_ratio" validate:"min=0,max=1"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                  "development",
		"server.port":                  "8080",
		"server.read_timeout":          "10s",
		"server.write_timeout":         "30s",
		"server.idle_timeout":          "60s",
		"server.request_timeout":       "25s",
		"server.max_body_bytes":        1 << 20,
		"storage.driver":               StorageMemory,
		"database.port":                5432,
		"database.ssl_mode":            "disable",
		"database.max_open_conns":      10,
		"database.max_idle_conns":      2,
		"database.conn_max_lifetime":   "1h",
		"database.conn_max_idle_time":  "10m",
		"database.health_check_period": "30s",
		"database.connect_timeout":     "5s",
		"gateway.mode":                 GatewaySimulated,
		"gateway.timeout":              "10s",
		"retry.base_delay":             "100ms",
		"retry.max_delay":              "2s",
		"retry.max_attempts":           3,
		"notifier.mode":                NotifierLog,
		"processor.presave_orders":     false,
		"worker.enabled":               false,
		"worker.interval":              "1m",
		"worker.stale_after":           "15m",
		"worker.batch_size":            100,
		"logger.level":                 "info",
		"logger.format":                "json",
		"metrics.enabled":              true,
		"metrics.path":                 "/metrics",
		"metrics.namespace":            "payment_processor",
		"tracing.enabled":              false,
		"tracing.sample_ratio":         1.0,
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Gateway.Mode == GatewayHTTP && c.Gateway.BaseURL == "" {
		return errors.New("gateway: base_url is required in http mode")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics: path %q must start with /", c.Metrics.Path)
	}
	if c.Storage.Driver == StoragePostgres {
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}
