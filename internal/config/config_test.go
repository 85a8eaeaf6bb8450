package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("full config", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, `
connection:
  host: db.internal
  port: 5433
  username: census
  database: rooms
  sslmode: require
timeout: 90s
`)

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Connection.Host)
		assert.Equal(t, 5433, cfg.Connection.Port)
		assert.Equal(t, "census", cfg.Connection.Username)
		assert.Equal(t, "rooms", cfg.Connection.Database)
		assert.Equal(t, "require", cfg.Connection.SSLMode)
		assert.Equal(t, "90s", cfg.Timeout)
	})

	t.Run("partial config leaves zero values", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "connection:\n  database: rooms\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "rooms", cfg.Connection.Database)
		assert.Empty(t, cfg.Connection.Host)
		assert.Zero(t, cfg.Connection.Port)
		assert.Empty(t, cfg.Timeout)
	})

	t.Run("malformed yaml returns error", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "connection: [not a mapping")

		cfg, err := Load(dir)
		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrConfigNotFound)
	})
}
