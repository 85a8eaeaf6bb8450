package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// SessionManager prepares the shared database session for a run:
// connect to the target database, acquire the single connection the whole
// cycle operates on.
//
// SessionManager is thread-safe for concurrent use as long as the injected
// dependencies (connectorFactory, logger) are also thread-safe.
type SessionManager struct {
	connectorFactory func(*roomcensus.ConnectionConfig) (roomcensus.Connector, error)
	logger           roomcensus.Logger
}

// NewSessionManager creates a new SessionManager with all dependencies injected.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewSessionManager(
	connectorFactory func(*roomcensus.ConnectionConfig) (roomcensus.Connector, error),
	logger roomcensus.Logger,
) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		logger:           logger,
	}
}

// PrepareSession connects to the target database and acquires the session
// connection.
//
// The caller is responsible for closing the session: defer session.Close().
func (sm *SessionManager) PrepareSession(
	ctx context.Context,
	connConfig *roomcensus.ConnectionConfig,
) (*roomcensus.Session, error) {
	pool, err := sm.connectToDatabase(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Acquire a single connection for the entire run. Every component
	// operates on this one shared connection, opened once here and held
	// until the cycle finishes.
	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return roomcensus.NewSession(pool, conn), nil
}

// connectToDatabase establishes a connection pool to the target database.
func (sm *SessionManager) connectToDatabase(
	ctx context.Context,
	connConfig *roomcensus.ConnectionConfig,
) (*pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	connector, err := sm.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	return pool, nil
}

// Verify SessionManager implements the interface at compile time
var _ roomcensus.SessionPreparer = (*SessionManager)(nil)
