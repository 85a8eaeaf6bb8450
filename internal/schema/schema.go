// Package schema creates the rooms and students tables.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

//go:embed schema.sql
var schemaSQL string

// EnsureTables creates the rooms and students tables if they do not exist.
// The students.room foreign key to rooms(id) enforces that every student's
// room reference resolves to an existing room.
func EnsureTables(ctx context.Context, conn *pgxpool.Conn) error {
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create tables: %v: %w", err, roomcensus.ErrDatabase)
	}
	return nil
}
