package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "./earthquakes.sqlite3", cfg.DBPath)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.Equal(t, "./templates", cfg.TemplateDir)
	assert.Equal(t, "./public", cfg.PublicDir)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DB_PATH", "/data/quakes.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "16")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")
	t.Setenv("PUBLIC_DIR", "/srv/public")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/data/quakes.db", cfg.DBPath)
	assert.Equal(t, 16, cfg.DBMaxOpenConns)
	assert.Equal(t, "/srv/templates", cfg.TemplateDir)
	assert.Equal(t, "/srv/public", cfg.PublicDir)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidMaxOpenConns(t *testing.T) {
	for _, v := range []string{"0", "-2", "many"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DB_MAX_OPEN_CONNS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DB_MAX_OPEN_CONNS")
		})
	}
}
