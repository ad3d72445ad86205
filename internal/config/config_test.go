package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeTempConfig(t, `
port: 9090
debug: true
database:
  type: sqlite
  dsn: "file::memory:"
admin:
  password: secret
cors:
  allowed_origins:
    - https://example.com
usage:
  retention_days: 30
  max_body_bytes: 1024
scheduler:
  usage_prune_spec: "@hourly"
`)
		config, warnings, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, 9090, config.Port)
		assert.True(t, config.Debug)
		assert.Equal(t, "sqlite", config.Database.Type)
		assert.Equal(t, "secret", config.Admin.Password)
		assert.Equal(t, []string{"https://example.com"}, config.CORS.AllowedOrigins)
		assert.Equal(t, 30, config.Usage.RetentionDays)
		assert.Equal(t, 1024, config.Usage.MaxBodyBytes)
		assert.Equal(t, 256, config.Usage.QueueSize)
		assert.Equal(t, "@hourly", config.Scheduler.UsagePruneSpec)
	})

	t.Run("defaults when file is missing", func(t *testing.T) {
		config, warnings, err := LoadConfig("non-existent-file.yaml")
		require.NoError(t, err)
		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "sqlite", config.Database.Type)
		assert.Equal(t, "folio.db", config.Database.DSN)
		assert.Equal(t, 90, config.Usage.RetentionDays)
		assert.Equal(t, 4096, config.Usage.MaxBodyBytes)
		assert.Equal(t, "@daily", config.Scheduler.UsagePruneSpec)
		assert.Len(t, warnings, 3)
	})

	t.Run("dsn without type", func(t *testing.T) {
		path := writeTempConfig(t, "database:\n  dsn: \"host=localhost\"\n")
		_, _, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "port: 8080\n  debug: true\n\t- nope")
		_, _, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("negative retention is kept", func(t *testing.T) {
		path := writeTempConfig(t, "usage:\n  retention_days: -1\n")
		config, _, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, -1, config.Usage.RetentionDays)
	})
}
