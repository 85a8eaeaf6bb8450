// Package loader inserts parsed records into the rooms and students tables.
package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

const (
	insertRoomSQL = `INSERT INTO rooms (id, name) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	insertStudentSQL = `INSERT INTO students (id, name, birthday, sex, room) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`
)

// Loader handles batch insertion of rooms and students.
type Loader struct{}

// NewLoader creates a new record loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRooms inserts room records into the rooms table using a batch insert.
// Already-present rows are skipped via ON CONFLICT DO NOTHING so reloading
// the same file is not an error.
func (l *Loader) LoadRooms(ctx context.Context, conn *pgxpool.Conn, rooms []roomcensus.Room) error {
	if len(rooms) == 0 {
		return nil // Nothing to insert
	}

	batch := &pgx.Batch{}
	for _, room := range rooms {
		batch.Queue(insertRoomSQL, room.ID, room.Name)
	}

	results := conn.SendBatch(ctx, batch)

	// Check each result for errors
	for i := range rooms {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert room %d: %v: %w", rooms[i].ID, err, roomcensus.ErrDatabase)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to complete room batch insert: %v: %w", err, roomcensus.ErrDatabase)
	}

	return nil
}

// LoadStudents inserts student records into the students table using a
// batch insert. A student referencing a missing room fails the batch; the
// foreign key is the single authority on referential integrity.
func (l *Loader) LoadStudents(ctx context.Context, conn *pgxpool.Conn, students []roomcensus.Student) error {
	if len(students) == 0 {
		return nil // Nothing to insert
	}

	batch := &pgx.Batch{}
	for _, student := range students {
		batch.Queue(insertStudentSQL,
			student.ID,
			student.Name,
			student.Birthday,
			student.Sex,
			student.Room,
		)
	}

	results := conn.SendBatch(ctx, batch)

	// Check each result for errors
	for i := range students {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert student %d: %v: %w", students[i].ID, err, roomcensus.ErrDatabase)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to complete student batch insert: %v: %w", err, roomcensus.ErrDatabase)
	}

	return nil
}

// Verify Loader implements the interface at compile time
var _ roomcensus.RecordLoader = (*Loader)(nil)
