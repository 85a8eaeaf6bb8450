package config

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Flags carries the connection-related CLI flag values.
// Zero values mean "not provided".
type Flags struct {
	Host     string
	Port     int
	Username string
	Database string
	Password string
	SSLMode  string
}

// EnvVars holds PostgreSQL-standard environment variables.
type EnvVars struct {
	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string
}

// LoadFromEnvironment loads PostgreSQL environment variables.
// This follows standard PostgreSQL client behavior; .env files loaded via
// godotenv earlier in the command surface here as process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:     os.Getenv("PGHOST"),
		PGPORT:     os.Getenv("PGPORT"),
		PGUSER:     os.Getenv("PGUSER"),
		PGPASSWORD: os.Getenv("PGPASSWORD"),
		PGDATABASE: os.Getenv("PGDATABASE"),
		PGSSLMODE:  os.Getenv("PGSSLMODE"),
	}
}

// Resolve merges connection parameters under the precedence rule:
//
//	1. CLI flags (--db-host, --db-port, --db-user, --db-name, --db-password)
//	2. Environment variables (PGHOST, PGPORT, PGUSER, PGPASSWORD, PGDATABASE)
//	3. roomcensus.yaml connection section (may be nil)
//	4. Defaults (localhost:5432, current OS user, sslmode prefer)
//
// The database name has no default; a missing name is reported later by
// RunConfig.Validate.
func Resolve(flags *Flags, env *EnvVars, project *ProjectConfig) (*roomcensus.ConnectionConfig, error) {
	if flags == nil {
		flags = &Flags{}
	}
	if env == nil {
		env = &EnvVars{}
	}

	var projConn ConnectionConfig
	if project != nil {
		projConn = project.Connection
	}

	port, err := resolvePort(flags.Port, env.PGPORT, projConn.Port)
	if err != nil {
		return nil, err
	}

	cfg := &roomcensus.ConnectionConfig{
		Host:     firstNonEmpty(flags.Host, env.PGHOST, projConn.Host, roomcensus.DefaultHost),
		Port:     port,
		Username: firstNonEmpty(flags.Username, env.PGUSER, projConn.Username, currentOSUser()),
		Password: firstNonEmpty(flags.Password, env.PGPASSWORD),
		Database: firstNonEmpty(flags.Database, env.PGDATABASE, projConn.Database),
		SSLMode:  firstNonEmpty(flags.SSLMode, env.PGSSLMODE, projConn.SSLMode, "prefer"),
	}

	return cfg, nil
}

func resolvePort(flagPort int, envPort string, projPort int) (int, error) {
	if flagPort != 0 {
		return flagPort, nil
	}
	if envPort != "" {
		p, err := strconv.Atoi(envPort)
		if err != nil {
			return 0, fmt.Errorf("invalid PGPORT value %q: %w", envPort, roomcensus.ErrInvalidConfig)
		}
		return p, nil
	}
	if projPort != 0 {
		return projPort, nil
	}
	return roomcensus.DefaultPort, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// currentOSUser returns the OS username, matching psql's default for -U.
func currentOSUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
