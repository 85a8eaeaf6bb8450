package roomcensus

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordLoader inserts parsed records into the database tables.
// Rooms must be loaded before students; students.room carries a foreign
// key to rooms.id enforced by the database.
type RecordLoader interface {
	// LoadRooms inserts room records into the rooms table.
	// Rows that already exist are skipped, making reloads idempotent.
	LoadRooms(ctx context.Context, conn *pgxpool.Conn, rooms []Room) error

	// LoadStudents inserts student records into the students table.
	// Rows that already exist are skipped, making reloads idempotent.
	LoadStudents(ctx context.Context, conn *pgxpool.Conn, students []Student) error
}
