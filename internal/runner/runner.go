// Package runner executes catalog queries and collects their result sets.
package runner

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/internal/catalog"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Runner executes queries from a static catalog against an acquired
// connection. A single execution attempt per call; this is an offline
// batch tool, not a service, so there are no retries.
type Runner struct {
	catalog *catalog.Catalog
}

// NewRunner creates a Runner over the given catalog.
//
// Panics if cat is nil. This is intentional fail-fast behavior; a nil
// catalog indicates incorrect dependency injection setup.
func NewRunner(cat *catalog.Catalog) *Runner {
	if cat == nil {
		panic("catalog cannot be nil")
	}
	return &Runner{catalog: cat}
}

// Run looks up name in the catalog, executes its SQL, and returns the
// result set. Column order follows the query projection; row order is
// whatever the database returned.
func (r *Runner) Run(ctx context.Context, conn *pgxpool.Conn, name string) (roomcensus.ResultSet, error) {
	query, ok := r.catalog.Lookup(name)
	if !ok {
		return roomcensus.ResultSet{}, fmt.Errorf("query %q is not in the catalog: %w", name, roomcensus.ErrUnknownQuery)
	}

	rows, err := conn.Query(ctx, query.SQL)
	if err != nil {
		return roomcensus.ResultSet{}, fmt.Errorf("failed to execute query %q: %v: %w", name, err, roomcensus.ErrDatabase)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	result := roomcensus.ResultSet{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return roomcensus.ResultSet{}, fmt.Errorf("failed to read row of query %q: %v: %w", name, err, roomcensus.ErrDatabase)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return roomcensus.ResultSet{}, fmt.Errorf("query %q failed: %v: %w", name, err, roomcensus.ErrDatabase)
	}

	return result, nil
}

// Names returns all catalog query names in declared order.
func (r *Runner) Names() []string {
	return r.catalog.Names()
}

// Verify Runner implements the interface at compile time
var _ roomcensus.QueryRunner = (*Runner)(nil)
