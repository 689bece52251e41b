package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PROJECT_DURATION_DAYS", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	require.NoError(t, Load())

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 60, AppConfig.Project.DurationDays)
	assert.Equal(t, "./kickfarter.db", AppConfig.Database.Path)
	assert.Equal(t, "info", AppConfig.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROJECT_DURATION_DAYS", "30")
	t.Setenv("BCRYPT_COST", "4")

	require.NoError(t, Load())

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, 30, AppConfig.Project.DurationDays)
	assert.Equal(t, 4, AppConfig.Auth.BcryptCost)
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	assert.Equal(t, 15, getEnvAsInt("READ_TIMEOUT", 15))
}
