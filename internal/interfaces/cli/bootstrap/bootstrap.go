// Package bootstrap loads configuration and opens the process-wide
// resources shared by the CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/deskhub/deskhub/internal/infrastructure/config"
	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/shared/biztime"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// Env is what a command gets after Init.
type Env struct {
	Config *config.Config
	Log    logger.Interface
}

// Init loads the config, then sets up the logger, the business timezone and
// the database. Callers must call Close.
func Init(env, configPath string) (*Env, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{Config: cfg, Log: logger.NewLogger()}, nil
}

// Close releases the database and flushes the logger.
func (e *Env) Close() {
	if err := database.Close(); err != nil {
		e.Log.Warnw("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

// MapEnvToGinMode maps a deployment environment name to a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
