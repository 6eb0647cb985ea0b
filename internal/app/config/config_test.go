package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Repository)
	assert.Equal(t, "sqlite", cfg.SQLDriver)
	assert.Equal(t, DefaultSQLitePath, cfg.SQLitePath)
	assert.Equal(t, 8080, cfg.ServicePort)
}

func TestNewConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
ServicePort = 9090
Repository = "SQL"
SQLitePath = "port.db"
`), 0o600))
	t.Setenv("REDIS_ENDPOINT", "redis:6380")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServicePort)
	assert.Equal(t, "sql", cfg.Repository)
	assert.Equal(t, "port.db", cfg.SQLitePath)
	assert.Equal(t, "redis:6380", cfg.RedisEndpoint)

	t.Setenv("PORT_REPOSITORY", "redis")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Repository, "environment overrides the file")
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	defer logrus.SetFormatter(logrus.StandardLogger().Formatter)

	SetupLogging(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	SetupLogging(&Config{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
