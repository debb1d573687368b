package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers understood by the repository factory.
const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	Certificate CertificateConfig
	QR          QRConfig
	Storage     StorageConfig
	MongoDB     MongoDBConfig
	Sheets      SheetsConfig
	Scheduler   SchedulerConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Host           string   `env:"APP_HOST"`
	Port           string   `env:"APP_PORT" envDefault:"5000"`
	PublicBaseURL  string   `env:"PUBLIC_BASE_URL"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,http://127.0.0.1:8080"`
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// CertificateConfig controls PDF certificate generation.
type CertificateConfig struct {
	UploadsDir    string `env:"UPLOADS_DIR" envDefault:"uploads"`
	DefaultLocale string `env:"CERT_LOCALE" envDefault:"en-US"`
}

// QRConfig controls QR image rendering.
type QRConfig struct {
	Width  int `env:"QR_WIDTH" envDefault:"300"`
	Margin int `env:"QR_MARGIN" envDefault:"2"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver       string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SeedDemoData bool   `env:"SEED_DEMO_DATA" envDefault:"true"`
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string `env:"MONGODB_URI"`
	DBName string `env:"MONGODB_DB_NAME" envDefault:"railfit"`
}

// SheetsConfig points at the optional Google Sheets certificate register.
type SheetsConfig struct {
	CredentialsPath string `env:"GOOGLE_SHEETS_CREDENTIALS_PATH"`
	SpreadsheetID   string `env:"GOOGLE_SHEET_REGISTER_ID"`
	RegisterRange   string `env:"REGISTER_SHEET_RANGE" envDefault:"Certificates!A:I"`
}

// Enabled reports whether the register sheet is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// SchedulerConfig holds cron-related settings.
type SchedulerConfig struct {
	UploadRetention   time.Duration `env:"UPLOAD_RETENTION" envDefault:"0s"`
	RetentionCron     string        `env:"RETENTION_CRON" envDefault:"@hourly"`
	WarrantyAlertCron string        `env:"WARRANTY_ALERT_CRON" envDefault:"0 7 * * *"`
	WarrantyAlertDays int           `env:"WARRANTY_ALERT_DAYS" envDefault:"30"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	c.Server.PublicBaseURL = strings.TrimSuffix(strings.TrimSpace(c.Server.PublicBaseURL), "/")

	if c.Certificate.UploadsDir == "" {
		return errors.New("UPLOADS_DIR must not be empty")
	}

	if c.QR.Width <= 0 {
		return errors.New("QR_WIDTH must be positive")
	}
	if c.QR.Margin < 0 {
		return errors.New("QR_MARGIN must not be negative")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORAGE_DRIVER=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_REGISTER_ID must be provided together")
	}

	if c.Scheduler.UploadRetention < 0 {
		return errors.New("UPLOAD_RETENTION must not be negative")
	}
	if c.Scheduler.WarrantyAlertDays <= 0 {
		return errors.New("WARRANTY_ALERT_DAYS must be positive")
	}

	return nil
}
