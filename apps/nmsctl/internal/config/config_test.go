package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ORC8R_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OrchestratorTimeout != 10*time.Second {
		t.Errorf("OrchestratorTimeout = %v, want 10s", cfg.OrchestratorTimeout)
	}
	if cfg.ImportConcurrency != 10 {
		t.Errorf("ImportConcurrency = %d, want 10", cfg.ImportConcurrency)
	}
	if cfg.LogLevel != "WARN" {
		t.Errorf("LogLevel = %q, want WARN", cfg.LogLevel)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ORC8R_URL", "https://orc8r.example.com")
	t.Setenv("IMPORT_CONCURRENCY", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OrchestratorURL != "https://orc8r.example.com" {
		t.Errorf("OrchestratorURL = %q", cfg.OrchestratorURL)
	}
	if cfg.ImportConcurrency != 4 {
		t.Errorf("ImportConcurrency = %d, want 4", cfg.ImportConcurrency)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{OrchestratorURL: "http://localhost:9443", OrchestratorTimeout: time.Second, ImportConcurrency: 1}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"relative url", func(c *Config) { c.OrchestratorURL = "localhost:9443" }, true},
		{"empty url", func(c *Config) { c.OrchestratorURL = "" }, true},
		{"zero timeout", func(c *Config) { c.OrchestratorTimeout = 0 }, true},
		{"zero concurrency", func(c *Config) { c.ImportConcurrency = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
