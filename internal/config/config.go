// Package config loads the client configuration. Values come from a YAML
// file, then a .env file and HEALTHSURVEY_* environment variables, then
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mrsinham/healthsurvey/internal/plan"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL        = "HEALTHSURVEY_API_URL"
	EnvSessionEngine = "HEALTHSURVEY_SESSION_ENGINE"
	EnvSessionPath   = "HEALTHSURVEY_SESSION_PATH"
	EnvSessionID     = "HEALTHSURVEY_SESSION_ID"
	EnvLogFile       = "HEALTHSURVEY_LOG_FILE"
)

// Config is the complete client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Plan    plan.Params   `yaml:"plan"`
	Export  ExportConfig  `yaml:"export"`
	Share   ShareConfig   `yaml:"share"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Engine string `yaml:"engine"`
	Path   string `yaml:"path"`
	// ID resumes an existing sqlite session. A resumed session is kept at
	// exit; without an ID a new session is started and cleared at exit.
	ID string `yaml:"id,omitempty"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Format   string `yaml:"format"`
	Filename string `yaml:"filename"`
}

type ShareConfig struct {
	URL string `yaml:"url"`
}

type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:80",
			Timeout: 60 * time.Second,
		},
		Session: SessionConfig{
			Engine: "memory",
			Path:   filepath.Join(".healthsurvey", "session.db"),
		},
		Plan: plan.DefaultParams(),
		Export: ExportConfig{
			Dir:      ".",
			Format:   "png",
			Filename: "Health_Report",
		},
		Share: ShareConfig{URL: "http://localhost:3000/predict/result"},
		Log:   LogConfig{File: "healthsurvey.log"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads envFile (ignored when absent) into the process environment
// and overlays the HEALTHSURVEY_* variables. Variables already set in the
// environment win over the file.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvSessionEngine); v != "" {
		cfg.Session.Engine = v
	}
	if v := os.Getenv(EnvSessionPath); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv(EnvSessionID); v != "" {
		cfg.Session.ID = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Validate checks the configuration before any component is built.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0, got %s", c.API.Timeout)
	}

	switch strings.ToLower(c.Session.Engine) {
	case "memory":
	case "sqlite":
		if c.Session.Path == "" {
			return errors.New("session.path is required for the sqlite engine")
		}
	default:
		return fmt.Errorf("session.engine must be memory or sqlite, got %q", c.Session.Engine)
	}
	if c.Session.ID != "" {
		if !strings.EqualFold(c.Session.Engine, "sqlite") {
			return errors.New("session.id requires the sqlite engine")
		}
		if err := uuid.Validate(c.Session.ID); err != nil {
			return fmt.Errorf("session.id must be a UUID: %w", err)
		}
	}

	if err := c.Plan.Validate(); err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	switch strings.ToLower(c.Export.Format) {
	case "png", "dcm":
	default:
		return fmt.Errorf("export.format must be png or dcm, got %q", c.Export.Format)
	}
	if strings.TrimSpace(c.Export.Filename) == "" {
		return errors.New("export.filename is required")
	}
	return nil
}

// SaveToYAML writes the configuration to path.
func (c *Config) SaveToYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
