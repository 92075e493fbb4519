package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
submission:
  endpoint_url: https://example.com/exec
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/travel_expense.db", cfg.Database.Path)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 30*time.Second, cfg.Submission.Timeout)
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.Equal(t, "travel_expense_session", cfg.Session.CookieName)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
submission:
  endpoint_url: https://example.com/exec
  timeout: 10s
session:
  ttl: 45m
logger:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Submission.Timeout)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsMissingEndpoint(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission.endpoint_url")
}

func TestLoadRejectsRelativeEndpoint(t *testing.T) {
	path := writeConfig(t, `
submission:
  endpoint_url: /exec
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute URL")
}

func TestEndpointFromEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("SUBMISSION_ENDPOINT_URL", "https://env.example.com/exec")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/exec", cfg.Submission.EndpointURL)
}
