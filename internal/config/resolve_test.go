package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func TestResolve(t *testing.T) {
	t.Run("defaults when nothing is provided", func(t *testing.T) {
		cfg, err := Resolve(nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, roomcensus.DefaultHost, cfg.Host)
		assert.Equal(t, roomcensus.DefaultPort, cfg.Port)
		assert.Equal(t, "prefer", cfg.SSLMode)
		assert.Empty(t, cfg.Database, "database name has no default")
		assert.Empty(t, cfg.Password)
	})

	t.Run("flags win over environment and project", func(t *testing.T) {
		flags := &Flags{Host: "flag-host", Port: 6000, Username: "flag-user", Database: "flag-db"}
		env := &EnvVars{PGHOST: "env-host", PGPORT: "7000", PGUSER: "env-user", PGDATABASE: "env-db"}
		project := &ProjectConfig{Connection: ConnectionConfig{Host: "yaml-host", Port: 8000}}

		cfg, err := Resolve(flags, env, project)
		require.NoError(t, err)
		assert.Equal(t, "flag-host", cfg.Host)
		assert.Equal(t, 6000, cfg.Port)
		assert.Equal(t, "flag-user", cfg.Username)
		assert.Equal(t, "flag-db", cfg.Database)
	})

	t.Run("environment wins over project config", func(t *testing.T) {
		env := &EnvVars{PGHOST: "env-host", PGPORT: "7000", PGPASSWORD: "env-secret"}
		project := &ProjectConfig{Connection: ConnectionConfig{Host: "yaml-host", Port: 8000, Database: "yaml-db"}}

		cfg, err := Resolve(&Flags{}, env, project)
		require.NoError(t, err)
		assert.Equal(t, "env-host", cfg.Host)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, "env-secret", cfg.Password)
		assert.Equal(t, "yaml-db", cfg.Database, "database falls through to project config")
	})

	t.Run("project config fills remaining gaps", func(t *testing.T) {
		project := &ProjectConfig{Connection: ConnectionConfig{
			Host: "yaml-host", Port: 8000, Username: "yaml-user", Database: "yaml-db", SSLMode: "disable",
		}}

		cfg, err := Resolve(&Flags{}, &EnvVars{}, project)
		require.NoError(t, err)
		assert.Equal(t, "yaml-host", cfg.Host)
		assert.Equal(t, 8000, cfg.Port)
		assert.Equal(t, "yaml-user", cfg.Username)
		assert.Equal(t, "yaml-db", cfg.Database)
		assert.Equal(t, "disable", cfg.SSLMode)
	})

	t.Run("invalid PGPORT is a config error", func(t *testing.T) {
		env := &EnvVars{PGPORT: "not-a-port"}

		cfg, err := Resolve(&Flags{}, env, nil)
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, roomcensus.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "not-a-port")
	})

	t.Run("flag port ignores invalid PGPORT", func(t *testing.T) {
		flags := &Flags{Port: 6000}
		env := &EnvVars{PGPORT: "not-a-port"}

		cfg, err := Resolve(flags, env, nil)
		require.NoError(t, err)
		assert.Equal(t, 6000, cfg.Port)
	})
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PGHOST", "env-host")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGUSER", "env-user")
	t.Setenv("PGPASSWORD", "env-secret")
	t.Setenv("PGDATABASE", "env-db")
	t.Setenv("PGSSLMODE", "require")

	env := LoadFromEnvironment()
	assert.Equal(t, "env-host", env.PGHOST)
	assert.Equal(t, "5433", env.PGPORT)
	assert.Equal(t, "env-user", env.PGUSER)
	assert.Equal(t, "env-secret", env.PGPASSWORD)
	assert.Equal(t, "env-db", env.PGDATABASE)
	assert.Equal(t, "require", env.PGSSLMODE)
}
