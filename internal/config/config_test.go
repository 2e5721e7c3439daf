package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RAIDPLAN_CONFIG", "RAIDPLAN_STORE", "RAIDPLAN_DATA_DIR", "RAIDPLAN_DEFAULT_LEVEL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL", "DATABASE_URL",
		"DISCORD_TOKEN", "DISCORD_CHANNEL_ID", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raidplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 100, cfg.DefaultLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "raidplan", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.DataDir)
	assert.False(t, cfg.Discord.Enabled())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAIDPLAN_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RAIDPLAN_DEFAULT_LEVEL", "90")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "1234")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90, cfg.DefaultLevel)
	assert.True(t, cfg.Discord.Enabled())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAIDPLAN_CONFIG", writeConfig(t, `
store: postgres
default_level: 90
postgres:
  url: postgres://file@db/raidplan
redis:
  addr: file-redis:6379
`))
	t.Setenv("DATABASE_URL", "postgres://env@db/raidplan")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 90, cfg.DefaultLevel)
	assert.Equal(t, "file-redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "postgres://env@db/raidplan", cfg.Postgres.URL, "env wins over the file")
	// untouched defaults survive the overlay
	assert.Equal(t, "raidplan", cfg.Telemetry.ServiceName)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "store: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"RAIDPLAN_STORE": "sqlite"}},
		{name: "postgres without url", env: map[string]string{"RAIDPLAN_STORE": "postgres"}},
		{name: "discord token without channel", env: map[string]string{"DISCORD_TOKEN": "token"}},
		{name: "non-positive level", env: map[string]string{"RAIDPLAN_DEFAULT_LEVEL": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
