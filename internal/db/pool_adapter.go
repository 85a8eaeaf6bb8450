package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// PoolAdapter exposes a *pgxpool.Pool through the narrow
// roomcensus.DBConnection surface the database manager works against:
// existence lookups and dedicated connections for CREATE DATABASE.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) roomcensus.DBConnection {
	return &PoolAdapter{pool: pool}
}

// QueryRow executes a query that is expected to return at most one row.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) roomcensus.Row {
	return &rowAdapter{row: p.pool.QueryRow(ctx, sql, args...)}
}

// Acquire obtains a dedicated connection from the pool.
func (p *PoolAdapter) Acquire(ctx context.Context) (roomcensus.PooledConnection, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConnAdapter{conn: conn}, nil
}

// rowAdapter adapts pgx.Row to implement roomcensus.Row.
type rowAdapter struct {
	row interface{ Scan(...any) error }
}

// Scan reads the values from the row into dest values.
func (r *rowAdapter) Scan(dest ...any) error {
	return r.row.Scan(dest...)
}

// pooledConnAdapter adapts *pgxpool.Conn to implement roomcensus.PooledConnection.
type pooledConnAdapter struct {
	conn *pgxpool.Conn
}

// Exec executes a query on this specific connection.
func (p *pooledConnAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.conn.Exec(ctx, sql, args...)
}

// Release returns the connection to the pool.
func (p *pooledConnAdapter) Release() {
	p.conn.Release()
}

// Verify PoolAdapter implements DBConnection at compile time
var _ roomcensus.DBConnection = (*PoolAdapter)(nil)
