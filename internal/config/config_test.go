package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mrsinham/healthsurvey/internal/survey"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if cfg.API.Timeout != 60*time.Second {
		t.Errorf("Expected timeout 60s, got %s", cfg.API.Timeout)
	}
	if cfg.Plan.NResults != 4 || cfg.Plan.MaxTokens != 1200 || cfg.Plan.Temperature != 0.2 {
		t.Errorf("Expected default plan params, got %+v", cfg.Plan)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("Expected default base URL, got %s", cfg.API.BaseURL)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthsurvey.yaml")
	content := `
api:
  base_url: http://predict.internal:8000
  timeout: 15s
plan:
  n_results: 6
session:
  engine: sqlite
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "http://predict.internal:8000" {
		t.Errorf("Expected base URL from file, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %s", cfg.API.Timeout)
	}
	if cfg.Plan.NResults != 6 {
		t.Errorf("Expected n_results 6, got %d", cfg.Plan.NResults)
	}
	if cfg.Plan.MaxTokens != 1200 {
		t.Errorf("Expected max_tokens default 1200, got %d", cfg.Plan.MaxTokens)
	}
	if cfg.Session.Engine != "sqlite" || cfg.Session.Path == "" {
		t.Errorf("Expected sqlite engine with default path, got %+v", cfg.Session)
	}
	if cfg.Export.Filename != "Health_Report" {
		t.Errorf("Expected default filename, got %s", cfg.Export.Filename)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("api: [unclosed"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "HEALTHSURVEY_SESSION_ENGINE=sqlite\nHEALTHSURVEY_SESSION_PATH=" + filepath.Join(dir, "s.db") + "\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv(EnvAPIURL, "http://from-env:9000")
	t.Setenv(EnvLogFile, "")
	// godotenv does not override variables that are already set; register
	// cleanup for the ones the file introduces.
	t.Setenv(EnvSessionEngine, "")
	os.Unsetenv(EnvSessionEngine)
	t.Setenv(EnvSessionPath, "")
	os.Unsetenv(EnvSessionPath)

	cfg := Default()
	if err := ApplyEnv(cfg, envFile); err != nil {
		t.Fatalf("ApplyEnv error = %v", err)
	}

	if cfg.API.BaseURL != "http://from-env:9000" {
		t.Errorf("Expected base URL from env, got %s", cfg.API.BaseURL)
	}
	if cfg.Session.Engine != "sqlite" {
		t.Errorf("Expected engine from .env, got %s", cfg.Session.Engine)
	}
	if cfg.Session.Path != filepath.Join(dir, "s.db") {
		t.Errorf("Expected path from .env, got %s", cfg.Session.Path)
	}
	if cfg.Log.File != "healthsurvey.log" {
		t.Errorf("Expected empty env var to keep default log file, got %s", cfg.Log.File)
	}
}

func TestApplyEnv_MissingFileIgnored(t *testing.T) {
	cfg := Default()
	if err := ApplyEnv(cfg, filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "localhost" }, "base_url"},
		{"empty url", func(c *Config) { c.API.BaseURL = "" }, "base_url"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "timeout"},
		{"unknown engine", func(c *Config) { c.Session.Engine = "redis" }, "session.engine"},
		{"sqlite without path", func(c *Config) { c.Session.Engine = "sqlite"; c.Session.Path = "" }, "session.path"},
		{"session id on memory", func(c *Config) { c.Session.ID = "6f1c2a4e-8d3b-4c5a-9e7f-0a1b2c3d4e5f" }, "sqlite engine"},
		{"session id not a uuid", func(c *Config) { c.Session.Engine = "sqlite"; c.Session.ID = "abc" }, "session.id"},
		{"plan out of range", func(c *Config) { c.Plan.MaxTokens = 10 }, "max_tokens"},
		{"unknown format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"empty filename", func(c *Config) { c.Export.Filename = " " }, "export.filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ResumedSession(t *testing.T) {
	cfg := Default()
	cfg.Session.Engine = "sqlite"
	cfg.Session.ID = "6f1c2a4e-8d3b-4c5a-9e7f-0a1b2c3d4e5f"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected sqlite session id to be valid, got %v", err)
	}
}

func TestApplyEnv_SessionID(t *testing.T) {
	t.Setenv(EnvSessionID, "6f1c2a4e-8d3b-4c5a-9e7f-0a1b2c3d4e5f")

	cfg := Default()
	if err := ApplyEnv(cfg, ""); err != nil {
		t.Fatalf("ApplyEnv error = %v", err)
	}
	if cfg.Session.ID != "6f1c2a4e-8d3b-4c5a-9e7f-0a1b2c3d4e5f" {
		t.Errorf("Expected session id from env, got %q", cfg.Session.ID)
	}
}

func TestValidate_PlanErrorIsValidationError(t *testing.T) {
	cfg := Default()
	cfg.Plan.Temperature = 2

	var valErr *survey.ValidationError
	if err := cfg.Validate(); !errors.As(err, &valErr) {
		t.Errorf("Expected wrapped ValidationError, got %v", err)
	}
}

func TestSaveToYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "healthsurvey.yaml")

	cfg := Default()
	cfg.API.BaseURL = "http://saved:1234"
	cfg.API.Timeout = 90 * time.Second
	cfg.Export.Format = "dcm"

	if err := cfg.SaveToYAML(path); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Expected %+v, got %+v", *cfg, *loaded)
	}
}
