// Package catalog holds the fixed set of named SQL queries the tool can run.
//
// The catalog is immutable after construction and validated up front:
// duplicate names, empty SQL, or an empty projection are construction
// errors, not runtime surprises.
package catalog

import (
	"fmt"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Query is one catalog entry: a name mapped to a literal SQL string and
// its declared projection (output column names, in order).
type Query struct {
	Name       string
	SQL        string
	Projection []string
}

// Catalog is an immutable mapping from name to query definition,
// preserving declaration order.
type Catalog struct {
	queries []Query
	byName  map[string]Query
}

// New builds a Catalog from the given definitions, validating that names
// are unique and every entry has SQL and a projection.
func New(defs []Query) (*Catalog, error) {
	byName := make(map[string]Query, len(defs))
	for _, q := range defs {
		if q.Name == "" {
			return nil, fmt.Errorf("query with empty name: %w", roomcensus.ErrInvalidConfig)
		}
		if _, dup := byName[q.Name]; dup {
			return nil, fmt.Errorf("duplicate query name %q: %w", q.Name, roomcensus.ErrInvalidConfig)
		}
		if q.SQL == "" {
			return nil, fmt.Errorf("query %q has empty SQL: %w", q.Name, roomcensus.ErrInvalidConfig)
		}
		if len(q.Projection) == 0 {
			return nil, fmt.Errorf("query %q has empty projection: %w", q.Name, roomcensus.ErrInvalidConfig)
		}
		byName[q.Name] = q
	}
	return &Catalog{queries: defs, byName: byName}, nil
}

// Default returns the built-in query catalog.
func Default() (*Catalog, error) {
	return New(defaultQueries)
}

// Lookup returns the query definition for name.
func (c *Catalog) Lookup(name string) (Query, bool) {
	q, ok := c.byName[name]
	return q, ok
}

// Names returns all query names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.queries))
	for i, q := range c.queries {
		names[i] = q.Name
	}
	return names
}

// Queries returns all definitions in declaration order.
func (c *Catalog) Queries() []Query {
	out := make([]Query, len(c.queries))
	copy(out, c.queries)
	return out
}

var defaultQueries = []Query{
	{
		Name: "students_per_room",
		SQL: `
			SELECT  rooms.name AS room,
			        COUNT(students.id) AS count
			FROM    rooms
			        LEFT JOIN students
			               ON rooms.id = students.room
			GROUP   BY rooms.id, rooms.name
			ORDER   BY rooms.id`,
		Projection: []string{"room", "count"},
	},
	{
		Name: "by_students",
		SQL: `
			SELECT  rooms.id AS room_id,
			        rooms.name AS room_name,
			        COUNT(students.room) AS number_of_students
			FROM    rooms
			        LEFT JOIN students
			               ON rooms.id = students.room
			GROUP   BY rooms.id, rooms.name`,
		Projection: []string{"room_id", "room_name", "number_of_students"},
	},
	{
		Name: "by_minimal_average_age",
		SQL: `
			SELECT  rooms.id AS room_id,
			        rooms.name AS room_name,
			        CAST(AVG(date_part('year', age(current_date, students.birthday))) AS integer) AS average_age
			FROM    rooms
			        LEFT JOIN students
			               ON rooms.id = students.room
			GROUP   BY rooms.id, rooms.name
			HAVING  COUNT(students.room) > 0
			ORDER   BY average_age
			LIMIT   6`,
		Projection: []string{"room_id", "room_name", "average_age"},
	},
	{
		Name: "by_age_difference",
		SQL: `
			SELECT  rooms.id AS room_id,
			        rooms.name AS room_name,
			        CAST(MAX(date_part('year', age(current_date, students.birthday)))
			           - MIN(date_part('year', age(current_date, students.birthday))) AS integer) AS age_difference
			FROM    rooms
			        LEFT JOIN students
			               ON rooms.id = students.room
			GROUP   BY rooms.id, rooms.name
			ORDER   BY age_difference DESC NULLS LAST
			LIMIT   5`,
		Projection: []string{"room_id", "room_name", "age_difference"},
	},
	{
		Name: "that_have_both_sex_students",
		SQL: `
			SELECT  rooms.id AS room_id,
			        rooms.name AS room_name,
			        COUNT(students.room) AS number_of_students,
			        COUNT(*) FILTER (WHERE students.sex = 'F') AS female_students_number,
			        COUNT(*) FILTER (WHERE students.sex = 'M') AS male_students_number
			FROM    rooms
			        LEFT JOIN students
			               ON rooms.id = students.room
			GROUP   BY rooms.id, rooms.name
			HAVING  COUNT(*) FILTER (WHERE students.sex = 'F') > 0
			   AND  COUNT(*) FILTER (WHERE students.sex = 'M') > 0
			ORDER   BY rooms.id`,
		Projection: []string{"room_id", "room_name", "number_of_students", "female_students_number", "male_students_number"},
	},
}
