package roomcensus

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QueryRunner executes catalog queries against the populated tables.
// A single execution attempt per call; no retries.
type QueryRunner interface {
	// Run looks up name in the catalog and executes its SQL.
	// Returns an error wrapping ErrUnknownQuery if name is not in the
	// catalog, or ErrDatabase if execution fails.
	Run(ctx context.Context, conn *pgxpool.Conn, name string) (ResultSet, error)

	// Names returns all catalog query names in declared order.
	Names() []string
}
