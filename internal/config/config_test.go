package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, 16, cfg.Rollouts)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Telemetry)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DECKCRAWL_SEED", "42")
	t.Setenv("DECKCRAWL_ROLLOUTS", "3")
	t.Setenv("DECKCRAWL_TELEMETRY", "true")
	t.Setenv("DECKCRAWL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.EqualValues(t, 42, cfg.Seed)
	assert.Equal(t, 3, cfg.Rollouts)
	assert.True(t, cfg.Telemetry)

	seed, err := cfg.ResolveSeed()
	require.NoError(t, err)
	assert.EqualValues(t, 42, seed)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("DECKCRAWL_ROLLOUTS", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	bad := cfg
	bad.Depth = -1
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())
}

func TestRunDefaultsToStarter(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	run, err := cfg.Run(nil)
	require.NoError(t, err)
	assert.Len(t, run.Deck, 10)
	assert.NotEmpty(t, run.Encounters)
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.yaml")
	data := "runs:\n  - name: short\n    hp: 30\n    deck: [{name: Strike, count: 3}]\n    encounters: [[Cultist]]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := Config{RunFile: path, RunName: "short", LogLevel: "info"}
	run, err := cfg.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, 30, run.HP)
	assert.Len(t, run.Deck, 3)
}
