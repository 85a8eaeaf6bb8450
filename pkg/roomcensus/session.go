package roomcensus

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPreparer abstracts session preparation for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, connConfig *ConnectionConfig) (*Session, error)
}

// Session encapsulates the shared database resources for one
// load-query-export cycle: the connection pool and the single acquired
// connection every component operates on.
//
// Thread-Safety: NOT safe for concurrent use. The tool is single-threaded;
// each run owns exactly one Session.
//
// Lifecycle:
//  1. Created by SessionManager.PrepareSession()
//  2. Used for schema creation, loading, and querying
//  3. Cleaned up via Close() (idempotent)
type Session struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

// NewSession creates a new Session instance.
// This is intended to be called by SessionManager, not by external code.
//
// Panics if pool or conn is nil (programmer error - SessionManager
// should never create a Session with nil resources).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool: pool,
		conn: conn,
	}
}

// Pool returns the connection pool for the session.
// The pool is valid until Close() is called.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired connection for the session.
// All loads and queries run on this single connection.
// The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
//
// Resource cleanup order:
//  1. Release the acquired connection back to the pool
//  2. Close the connection pool
//
// After calling Close(), the Session should not be used.
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
