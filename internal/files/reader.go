// Package files reads and decodes the flat rooms and students input files.
package files

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Birthday layouts accepted in students files. The reference datasets use
// a naive ISO-8601 timestamp with microseconds and no zone.
var birthdayLayouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Reader decodes JSON input files into typed records.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadRooms reads and decodes the rooms file.
// The file must contain a JSON array of objects with "id" and "name".
func (r *Reader) ReadRooms(path string) ([]roomcensus.Room, error) {
	data, err := readInputFile(path)
	if err != nil {
		return nil, err
	}

	var rooms []roomcensus.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms file %q: %v: %w", path, err, roomcensus.ErrFileFormat)
	}
	return rooms, nil
}

// studentRecord is the wire shape of one student entry. Birthday is kept
// as a string because the input timestamps carry no timezone and cannot be
// decoded by encoding/json's time.Time support.
type studentRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
	Sex      string `json:"sex"`
	Room     int    `json:"room"`
}

// ReadStudents reads and decodes the students file.
// The file must contain a JSON array of objects with "id", "name",
// "birthday", "sex" and "room".
func (r *Reader) ReadStudents(path string) ([]roomcensus.Student, error) {
	data, err := readInputFile(path)
	if err != nil {
		return nil, err
	}

	var records []studentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode students file %q: %v: %w", path, err, roomcensus.ErrFileFormat)
	}

	students := make([]roomcensus.Student, 0, len(records))
	for _, rec := range records {
		birthday, err := parseBirthday(rec.Birthday)
		if err != nil {
			return nil, fmt.Errorf("student %d: %v: %w", rec.ID, err, roomcensus.ErrFileFormat)
		}
		if rec.Sex != "M" && rec.Sex != "F" {
			return nil, fmt.Errorf("student %d: sex must be 'M' or 'F', got %q: %w", rec.ID, rec.Sex, roomcensus.ErrFileFormat)
		}
		students = append(students, roomcensus.Student{
			ID:       rec.ID,
			Name:     rec.Name,
			Birthday: birthday,
			Sex:      rec.Sex,
			Room:     rec.Room,
		})
	}
	return students, nil
}

func readInputFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s is not found: %w", path, roomcensus.ErrFileFormat)
		}
		return nil, fmt.Errorf("failed to read file %q: %v: %w", path, err, roomcensus.ErrFileFormat)
	}
	return data, nil
}

func parseBirthday(value string) (time.Time, error) {
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized birthday %q", value)
}

// Verify Reader implements the interface at compile time
var _ roomcensus.RecordReader = (*Reader)(nil)
