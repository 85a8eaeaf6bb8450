// Package testing provides shared helpers for integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/internal/testinfra"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: ROOMCENSUS_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("ROOMCENSUS_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("ROOMCENSUS_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// ParseConnConfig converts a PostgreSQL URI into a roomcensus.ConnectionConfig.
func ParseConnConfig(t *testing.T, connString string) *roomcensus.ConnectionConfig {
	t.Helper()

	parsed, err := pgx.ParseConfig(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	return &roomcensus.ConnectionConfig{
		Host:     parsed.Host,
		Port:     int(parsed.Port),
		Database: parsed.Database,
		Username: parsed.User,
		Password: parsed.Password,
		SSLMode:  "disable",
	}
}

// CreateTestDB creates a dedicated database for one test and returns a
// cleanup function that drops it again.
func CreateTestDB(t *testing.T, connString, dbName string) func() {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB setup: %v", err)
	}

	_, _ = pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", pgx.Identifier{dbName}.Sanitize()))
	if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())); err != nil {
		pool.Close()
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	return func() {
		_, _ = pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", pgx.Identifier{dbName}.Sanitize()))
		pool.Close()
	}
}

// AcquireSessionConn connects to the given database and acquires one
// connection, mirroring how the run service holds its session.
// The returned cleanup releases the connection and closes the pool.
func AcquireSessionConn(t *testing.T, connConfig *roomcensus.ConnectionConfig) (*pgxpool.Conn, func()) {
	t.Helper()
	ctx := context.Background()

	connString := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=disable",
		connConfig.Username, connConfig.Password, connConfig.Host, connConfig.Port, connConfig.Database)
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to %s: %v", connConfig.Database, err)
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to acquire connection: %v", err)
	}
	return conn, func() {
		conn.Release()
		pool.Close()
	}
}
