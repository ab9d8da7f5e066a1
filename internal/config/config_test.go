package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgrest", cfg.Source.Driver)
	assert.Equal(t, 20.0, cfg.Source.RateLimit)
	assert.Equal(t, 10, cfg.Profile.FlowLimit)
	assert.Equal(t, 500, cfg.Profile.FetchLimit)
	assert.False(t, cfg.Profile.RequireEmail)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRADELENS_SOURCE_DRIVER", "sqlite")
	t.Setenv("TRADELENS_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
