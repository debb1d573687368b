package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORAGE_DRIVER", "QR_WIDTH", "UPLOAD_RETENTION", "CORS_ALLOWED_ORIGINS", "PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("Port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("Driver = %q, want %q", cfg.Storage.Driver, StorageMemory)
	}
	if cfg.QR.Width != 300 || cfg.QR.Margin != 2 {
		t.Fatalf("QR = %+v, want width 300 margin 2", cfg.QR)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 entries", cfg.Server.AllowedOrigins)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, key := range []string{"APP_PORT", "PUBLIC_BASE_URL", "UPLOAD_RETENTION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9000\nPUBLIC_BASE_URL=https://certs.example.org/\nUPLOAD_RETENTION=72h\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("Port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Server.PublicBaseURL != "https://certs.example.org" {
		t.Fatalf("PublicBaseURL = %q, want trailing slash trimmed", cfg.Server.PublicBaseURL)
	}
	if cfg.Scheduler.UploadRetention != 72*time.Hour {
		t.Fatalf("UploadRetention = %v, want 72h", cfg.Scheduler.UploadRetention)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:      ServerConfig{Port: "5000"},
			Certificate: CertificateConfig{UploadsDir: "uploads"},
			QR:          QRConfig{Width: 300, Margin: 2},
			Storage:     StorageConfig{Driver: StorageMemory},
			Scheduler:   SchedulerConfig{WarrantyAlertDays: 30},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero qr width", mutate: func(c *Config) { c.QR.Width = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, wantErr: true},
		{name: "mongo without uri", mutate: func(c *Config) { c.Storage.Driver = StorageMongoDB }, wantErr: true},
		{name: "half configured sheets", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: true},
		{name: "negative retention", mutate: func(c *Config) { c.Scheduler.UploadRetention = -time.Hour }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
