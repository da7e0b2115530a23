package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Addr              string        `env:"APP_ADDR" envDefault:":8080"`
	Environment       string        `env:"APP_ENV" envDefault:"development"`
	StorageDriver     string        `env:"STORAGE_DRIVER" envDefault:"file"`
	DataDir           string        `env:"DATA_DIR" envDefault:"data"`
	SQLitePath        string        `env:"SQLITE_PATH" envDefault:"data/sitewatch.db"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	RedisAddr         string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix       string        `env:"REDIS_PREFIX" envDefault:"sitewatch:"`
	DataEncryptionKey string        `env:"DATA_ENCRYPTION_KEY"`
	MaxBodyBytes      int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	BackupInterval    time.Duration `env:"BACKUP_INTERVAL" envDefault:"1h"`
	PersistQueueSize  int           `env:"PERSIST_QUEUE_SIZE" envDefault:"128"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedFile          string        `env:"SEED_FILE"`
	FrontendDir       string        `env:"FRONTEND_DIR" envDefault:"frontend/dist"`
	MetricsEnabled    bool          `env:"METRICS_ENABLED" envDefault:"true"`

	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser         string `env:"SMTP_USER"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	SMTPUseTLS       bool   `env:"SMTP_USE_TLS" envDefault:"true"`
	AlertEmailFrom   string `env:"ALERT_EMAIL_FROM" envDefault:"alerts@sitewatch.local"`
	AlertEmailTo     string `env:"ALERT_EMAIL_TO"`
	AlertMinSeverity string `env:"ALERT_MIN_SEVERITY" envDefault:"high"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.AlertMinSeverity = strings.ToLower(strings.TrimSpace(cfg.AlertMinSeverity))
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("DATA_DIR is required for the file storage driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite storage driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	case DriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver)
	}
	if c.Environment == "production" {
		if c.StorageDriver == DriverMemory {
			return fmt.Errorf("STORAGE_DRIVER=memory does not persist and is not allowed in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.PersistQueueSize <= 0 {
		return fmt.Errorf("PERSIST_QUEUE_SIZE must be positive")
	}
	if c.BackupInterval < 0 {
		return fmt.Errorf("BACKUP_INTERVAL must not be negative")
	}
	switch c.AlertMinSeverity {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("ALERT_MIN_SEVERITY must be one of low, medium, high")
	}
	if c.AlertEmailTo != "" && strings.TrimSpace(c.SMTPHost) == "" {
		return fmt.Errorf("SMTP_HOST is required when ALERT_EMAIL_TO is set")
	}
	return nil
}
