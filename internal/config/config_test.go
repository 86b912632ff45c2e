package config

import (
	"os"
	"testing"
	"time"

	"github.com/ruipcf/consolida/internal/schema"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxFileSize != 52428800 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 52428800)
	}
	if cfg.Upload.MaxFiles != 100 {
		t.Errorf("Upload.MaxFiles = %d, want %d", cfg.Upload.MaxFiles, 100)
	}
	if cfg.Upload.MaxConcurrent != 4 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 4)
	}
	if cfg.Extract.ResultTTL != time.Hour {
		t.Errorf("Extract.ResultTTL = %v, want %v", cfg.Extract.ResultTTL, time.Hour)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
}

func TestLoad_DefaultColumns(t *testing.T) {
	os.Unsetenv("EXTRACT_COLUMNS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Extract.Columns) != len(schema.DefaultColumns) {
		t.Fatalf("Extract.Columns length = %d, want %d", len(cfg.Extract.Columns), len(schema.DefaultColumns))
	}
	for i, v := range schema.DefaultColumns {
		if cfg.Extract.Columns[i] != v {
			t.Errorf("Extract.Columns[%d] = %q, want %q", i, cfg.Extract.Columns[i], v)
		}
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("UPLOAD_MAX_CONCURRENT", "10")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("UPLOAD_MAX_CONCURRENT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxConcurrent != 10 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_ExtractColumns(t *testing.T) {
	os.Setenv("EXTRACT_COLUMNS", "K, Início global (s) ,Fim global (s)")
	defer os.Unsetenv("EXTRACT_COLUMNS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"K", "Início global (s)", "Fim global (s)"}
	if len(cfg.Extract.Columns) != len(expected) {
		t.Fatalf("Extract.Columns length = %d, want %d", len(cfg.Extract.Columns), len(expected))
	}
	for i, v := range expected {
		if cfg.Extract.Columns[i] != v {
			t.Errorf("Extract.Columns[%d] = %q, want %q", i, cfg.Extract.Columns[i], v)
		}
	}
}

func TestLoad_Duration(t *testing.T) {
	os.Setenv("SERVER_READ_TIMEOUT", "45s")
	os.Setenv("EXTRACT_RESULT_TTL", "1m30s")
	defer func() {
		os.Unsetenv("SERVER_READ_TIMEOUT")
		os.Unsetenv("EXTRACT_RESULT_TTL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Extract.ResultTTL != 90*time.Second {
		t.Errorf("Extract.ResultTTL = %v, want %v", cfg.Extract.ResultTTL, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	os.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")
	defer os.Unsetenv("TRUSTED_PROXIES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-number")
	defer os.Unsetenv("SERVER_PORT")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid SERVER_PORT")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
			Upload: UploadConfig{MaxFileSize: 1024, MaxFiles: 10, MaxConcurrent: 2},
			Extract: ExtractConfig{
				Columns:   []string{"K"},
				ResultTTL: time.Hour,
			},
			Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"file size zero", func(c *Config) { c.Upload.MaxFileSize = 0 }, true},
		{"max files zero", func(c *Config) { c.Upload.MaxFiles = 0 }, true},
		{"concurrency zero", func(c *Config) { c.Upload.MaxConcurrent = 0 }, true},
		{"no columns", func(c *Config) { c.Extract.Columns = nil }, true},
		{"ttl zero", func(c *Config) { c.Extract.ResultTTL = 0 }, true},
		{"rate zero while enabled", func(c *Config) { c.Rate.RequestsPerMinute = 0 }, true},
		{"rate zero while disabled", func(c *Config) { c.Rate.Enabled = false; c.Rate.RequestsPerMinute = 0 }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
