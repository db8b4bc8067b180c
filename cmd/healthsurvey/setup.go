package main

import (
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"github.com/mrsinham/healthsurvey/internal/api"
	"github.com/mrsinham/healthsurvey/internal/config"
	"github.com/mrsinham/healthsurvey/internal/export"
	"github.com/mrsinham/healthsurvey/internal/plan"
	"github.com/mrsinham/healthsurvey/internal/session"
)

// commonFlags are shared by the wizard and submit commands.
type commonFlags struct {
	configFile    string
	envFile       string
	apiURL        string
	sessionEngine string
	sessionPath   string
	sessionID     string
	saveConfig    string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "Load configuration from YAML file")
	fs.StringVar(&c.envFile, "env-file", ".env", "Load HEALTHSURVEY_* variables from a .env file")
	fs.StringVar(&c.apiURL, "api-url", "", "Base URL of the prediction service")
	fs.StringVar(&c.sessionEngine, "session-engine", "", "Session store engine: memory or sqlite")
	fs.StringVar(&c.sessionPath, "session-path", "", "Session database path (sqlite engine)")
	fs.StringVar(&c.sessionID, "session-id", "", "Resume a sqlite session by id; a resumed session is kept at exit")
	fs.StringVar(&c.saveConfig, "save-config", "", "Save the effective configuration to YAML file")
}

// load builds the configuration: YAML, then .env and environment, then flags.
func (c *commonFlags) load() (*config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, c.envFile); err != nil {
		return nil, err
	}

	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	if c.sessionEngine != "" {
		cfg.Session.Engine = c.sessionEngine
	}
	if c.sessionPath != "" {
		cfg.Session.Path = c.sessionPath
	}
	if c.sessionID != "" {
		cfg.Session.ID = c.sessionID
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.saveConfig != "" {
		if err := cfg.SaveToYAML(c.saveConfig); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
		log.Printf("configuration saved to %s", c.saveConfig)
	}
	return cfg, nil
}

// app wires the components of one session.
type app struct {
	client   *api.Client
	store    session.Store
	reports  *session.ReportStore
	planner  *plan.Controller
	exporter export.Exporter
	// resumed sessions outlive the process and are not cleared at exit
	resumed bool
}

func newApp(cfg *config.Config) (*app, error) {
	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	exporter, err := export.New(cfg.Export.Format, cfg.Export.Dir)
	if err != nil {
		return nil, err
	}

	store, err := session.NewByEngine(cfg.Session.Engine, cfg.Session.Path, cfg.Session.ID)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	return &app{
		client:   client,
		store:    store,
		reports:  session.NewReportStore(store),
		planner:  plan.NewController(client),
		exporter: exporter,
		resumed:  cfg.Session.ID != "",
	}, nil
}

// close clears a new session and releases the store. A resumed session
// keeps its slots until it is reset.
func (a *app) close() {
	if !a.resumed {
		if err := a.store.Clear(); err != nil {
			log.Printf("clearing session: %v", err)
		}
	}
	if err := a.store.Close(); err != nil {
		log.Printf("closing session store: %v", err)
	}
}
