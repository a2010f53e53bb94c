// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/store"
)

// Config is the resolved application configuration.
type Config struct {
	Env   string // dev, test, qa, prod
	Debug bool

	ServerAddr string
	DBPath     string

	RollbarToken string

	// Default weekly plan shape, as a "difficulty:bucket" → count JSON
	// object.
	PlanTargets string

	// LLM event retention, in days, for the prune job.
	EventRetentionDays int
}

// Load builds the configuration: defaults, then a .env file if present,
// then REVISIO_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("env", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("db_path", "")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("plan_targets", `{"easy:new":2,"medium:new":2,"medium:mid":2,"hard:mid":1,"medium:old":2,"hard:old":1}`)
	v.SetDefault("event_retention_days", 30)

	env := strings.ToLower(os.Getenv("REVISIO_ENV"))
	if env == "" {
		env = "dev"
	}

	// Load .env.<env> if it exists (ignore if it does not).
	dotEnvPath := filepath.Join("config", ".env."+env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", dotEnvPath, err)
	}

	v.SetEnvPrefix("REVISIO")
	v.AutomaticEnv()

	cfg := &Config{
		Env:                env,
		Debug:              v.GetBool("debug"),
		ServerAddr:         v.GetString("server_addr"),
		DBPath:             v.GetString("db_path"),
		RollbarToken:       v.GetString("rollbar_token"),
		PlanTargets:        v.GetString("plan_targets"),
		EventRetentionDays: v.GetInt("event_retention_days"),
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}

	return cfg, nil
}

// Targets parses the configured weekly plan shape.
func (c *Config) Targets() (plan.TargetCounts, error) {
	var tc plan.TargetCounts
	if err := json.Unmarshal([]byte(c.PlanTargets), &tc); err != nil {
		return nil, fmt.Errorf("parse REVISIO_PLAN_TARGETS: %w", err)
	}
	return tc, nil
}
