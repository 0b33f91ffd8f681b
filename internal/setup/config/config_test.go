package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarmlabs/hivehub/internal/setup/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, `
version = 1

[server]
host = "0.0.0.0"
port = 9090
public_url = "https://hub.example"

[postgresql]
host = "db.internal"
port = 5432
db_name = "hivehub"

[roblox]
group_id = 12345
universe_id = 601130232

[tracking]
enabled = true
interval = 60

[debug]
log_level = "debug"
`)

	cfg, configDir, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", configDir)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://hub.example", cfg.Server.PublicURL)
	assert.Equal(t, "db.internal", cfg.PostgreSQL.Host)
	assert.Equal(t, uint64(12345), cfg.Roblox.GroupID)
	assert.True(t, cfg.Tracking.Enabled)
	assert.Equal(t, 60, cfg.Tracking.Interval)
	assert.Equal(t, "debug", cfg.Debug.LogLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestLoadConfigMissingVersion(t *testing.T) {
	writeConfig(t, `
[server]
port = 8080
`)

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigVersionMissing)
}

func TestLoadConfigWrongVersion(t *testing.T) {
	writeConfig(t, `
version = 99
`)

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigVersionWrong)
}
