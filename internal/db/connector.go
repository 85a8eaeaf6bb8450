package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns limits concurrent connections. The tool itself is
	// single-threaded and holds one connection for the whole run.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps the connection alive for the lifetime
	// of a batch run.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// StandardConnector implements the Connector interface for standard
// username/password authentication. Connection is attempted exactly once;
// this is a one-shot batch tool and failures terminate the run.
type StandardConnector struct {
	config *roomcensus.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *roomcensus.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect establishes a connection pool using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := BuildConnectionString(c.config)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return pool, nil
}

// NewConnector is the factory used by the run service; kept as a factory
// function so tests can substitute their own connectors.
func NewConnector(config *roomcensus.ConnectionConfig) (roomcensus.Connector, error) {
	return NewStandardConnector(config), nil
}

// BuildConnectionString builds a PostgreSQL URI from resolved parameters.
func BuildConnectionString(config *roomcensus.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:   "/" + config.Database,
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	query := url.Values{}
	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}

	u.RawQuery = query.Encode()
	return u.String()
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// All returned errors unwrap to roomcensus.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %v: %w`, addr, host, port, err, roomcensus.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %v: %w`, host, err, roomcensus.ErrConnectionFailed)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database %q

Possible causes:
  - Wrong password (check $PGPASSWORD or --db-password)
  - Wrong username
  - User does not have access to the database

Original error: %v: %w`, database, err, roomcensus.ErrConnectionFailed)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets

Original error: %v: %w`, addr, err, roomcensus.ErrConnectionFailed)

	default:
		return fmt.Errorf("failed to connect to database: %v: %w", err, roomcensus.ErrConnectionFailed)
	}
}
