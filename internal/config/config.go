// Package config loads process configuration from DECKCRAWL_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Config is shared by all commands. Flags override individual fields.
type Config struct {
	Seed    uint64 `env:"DECKCRAWL_SEED"` // 0 picks a random seed
	RunFile string `env:"DECKCRAWL_RUN_FILE"`
	RunName string `env:"DECKCRAWL_RUN"`

	Addr    string `env:"DECKCRAWL_ADDR"     envDefault:":7777"`
	WebAddr string `env:"DECKCRAWL_WEB_ADDR" envDefault:":8080"`

	Rollouts int `env:"DECKCRAWL_ROLLOUTS"      envDefault:"16"`
	Depth    int `env:"DECKCRAWL_ROLLOUT_DEPTH" envDefault:"80"`
	Workers  int `env:"DECKCRAWL_WORKERS"`
	MaxSteps int `env:"DECKCRAWL_MAX_STEPS"     envDefault:"20000"`

	SessionTTL time.Duration `env:"DECKCRAWL_SESSION_TTL" envDefault:"30m"`
	LogLevel   string        `env:"DECKCRAWL_LOG_LEVEL"   envDefault:"info"`
	Telemetry  bool          `env:"DECKCRAWL_TELEMETRY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the numeric settings.
func (c Config) Validate() error {
	if c.Rollouts < 0 || c.Depth < 0 || c.Workers < 0 {
		return fmt.Errorf("config: rollout settings must not be negative")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("config: max steps must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a fresh random one when unset.
func (c Config) ResolveSeed() (uint64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return rng.NewSeed()
}

// Run returns the configured run: the named entry of RunFile, or the default
// starter run when no file is set.
func (c Config) Run(cat game.Catalog) (game.RunConfig, error) {
	if c.RunFile == "" {
		cfg := game.DefaultRunConfig()
		cfg.Catalog = cat
		return cfg, nil
	}
	return game.LoadRun(c.RunFile, c.RunName, cat)
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
