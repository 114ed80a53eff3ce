package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port int `env:"YELPCAMP_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("YELPCAMP_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "thisshouldbeabettersecret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/yelpcamp?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, ImageStoreDisk, cfg.ImageStore)
	assert.Equal(t, 10*time.Second, cfg.ExternalTimeout)
	assert.Equal(t, "thisshouldbeabettersecret", cfg.TokenSecret())
}

func TestLoadSQLiteDefaultPath(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "yelpcamp.db", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		DatabaseDriver:  "mysql",
		SessionStore:    SessionStoreRedis,
		ImageStore:      ImageStoreCloudinary,
		ExternalTimeout: time.Second,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET is required")
	assert.Contains(t, err.Error(), `DATABASE_DRIVER "mysql"`)
	assert.Contains(t, err.Error(), "CLOUDINARY_CLOUD_NAME")

	cfg = Config{
		SessionSecret:   "s",
		DatabaseDriver:  DriverSQLite,
		SessionStore:    SessionStoreMemory,
		ImageStore:      ImageStoreGridFS,
		ExternalTimeout: time.Second,
	}
	assert.NoError(t, cfg.Validate())
}
