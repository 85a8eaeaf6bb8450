package manager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

const queryDatabaseExists = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"

// Manager implements database lifecycle operations using the DBConnection
// abstraction. Stateless; thread safety depends on the injected DBConnection.
type Manager struct{}

// New creates a new DatabaseManager instance.
func New() roomcensus.DatabaseManager {
	return &Manager{}
}

// Exists checks if a database exists.
func (m *Manager) Exists(ctx context.Context, conn roomcensus.DBConnection, dbName string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// Create creates a new database.
// CREATE DATABASE cannot run inside a transaction, so a dedicated
// connection is acquired from the pool.
func (m *Manager) Create(ctx context.Context, conn roomcensus.DBConnection, dbName string) error {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooledConn.Release()

	query := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())
	_, err = pooledConn.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}
	return nil
}

// Verify Manager implements the DatabaseManager interface at compile time
var _ roomcensus.DatabaseManager = (*Manager)(nil)
