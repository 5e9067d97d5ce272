package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DATABASE_DRIVER", "DATABASE_DSN", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5555", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, defaultDSN, cfg.DatabaseDSN)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadSQLiteDefaultDSN(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "")
	os.Unsetenv("DATABASE_DSN")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "app.db", cfg.DatabaseDSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "/tmp/bakery.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/bakery.db", cfg.DatabaseDSN)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := Config{DatabaseDriver: DriverSQLite, DatabaseDSN: "x", LogLevel: "info"}
	require.NoError(t, valid.Validate())

	badDriver := valid
	badDriver.DatabaseDriver = "mysql"
	assert.ErrorContains(t, badDriver.Validate(), "unsupported DATABASE_DRIVER")

	noDSN := valid
	noDSN.DatabaseDSN = ""
	assert.Error(t, noDSN.Validate())

	badLevel := valid
	badLevel.LogLevel = "loud"
	assert.ErrorContains(t, badLevel.Validate(), "invalid LOG_LEVEL")
}
