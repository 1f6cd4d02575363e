package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, populated from environment
// variables. Command-line flags in main override individual fields.
type Config struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"8080"`

	// Oracle binaries and their per-call timeout.
	CheckerPath   string        `env:"CHECKER_PATH" envDefault:"./checker"`
	SolverPath    string        `env:"SOLVER_PATH" envDefault:"./solution"`
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"5s"`

	// Number pool database. Use ":memory:" for an unseeded ephemeral pool.
	PoolPath string `env:"POOL_PATH" envDefault:"numbers.db"`

	// Game retention and reaper cadence.
	GameTTL       time.Duration `env:"GAME_TTL" envDefault:"4h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional ngrok tunnel for external access during development.
	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
