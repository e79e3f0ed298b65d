package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("WORKERS", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/analyses.db", cfg.DBPath)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9999")
	t.Setenv("GPX_DIR", "/srv/gpx")
	t.Setenv("WORKERS", "8")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Port)
	assert.Equal(t, "/srv/gpx", cfg.GPXDir)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadIgnoresInvalidWorkers(t *testing.T) {
	t.Setenv("WORKERS", "zero")

	cfg := Load()
	assert.Equal(t, 4, cfg.Workers)
}
