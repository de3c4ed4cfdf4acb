package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const sessionFileName = "session.json"

// Config holds runtime settings for the snipctl CLI.
type Config struct {
	ServerURL   string        `env:"SNIPCTL_SERVER_URL"`
	SessionFile string        `env:"SNIPCTL_SESSION_FILE"`
	Timeout     time.Duration `env:"SNIPCTL_TIMEOUT"`
}

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// LoadDefaults populates c with defaults. The session file lives in the
// user config dir, or the working directory when that cannot be resolved.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000/api"
	c.Timeout = 10 * time.Second

	dir, err := userConfigDir()
	if err != nil {
		c.SessionFile = sessionFileName
		return
	}
	c.SessionFile = filepath.Join(dir, "snipctl", sessionFileName)
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerURL == "" {
		errs = append(errs, errors.New("server url is required"))
	}
	if c.SessionFile == "" {
		errs = append(errs, errors.New("session file is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, the environment and the optional JSON
// file at jsonPath. Flags are applied by the caller afterwards.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := parseJSON(cfg, jsonPath); err != nil {
		return nil, err
	}

	return cfg, nil
}
