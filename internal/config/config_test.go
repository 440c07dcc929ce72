package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
[database]
host = "localhost"
user = "departures"
dbname = "departures"
`

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(envDBPassword, "")
	os.Unsetenv(envDBPassword)
	os.Unsetenv(envCronSecret)

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Cron.Secret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envCronSecret, "cron-token")

	cfg, err := Load(writeConfig(t, minimal+`
password = "from-file"

[cron]
secret = "file-secret"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "cron-token", cfg.Cron.Secret)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
http_port = 70000

[logs]
level = "verbose"
`))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "http_port")
	assert.Contains(t, msg, "database.host")
	assert.Contains(t, msg, "database.dbname")
	assert.Contains(t, msg, "logs.level")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(envConfigPath, "/etc/departures/config.toml")
	assert.Equal(t, "/etc/departures/config.toml", Path())
}
