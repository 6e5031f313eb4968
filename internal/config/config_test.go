package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.ListingRewardPoints)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("LISTING_REWARD_POINTS", "25")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, 25, cfg.ListingRewardPoints)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewear.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_driver: postgres\ndatabase_dsn: host=db\nupload_dir: /srv/uploads\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "host=db", cfg.DatabaseDSN)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := config.Load("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
