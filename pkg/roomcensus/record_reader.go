package roomcensus

// RecordReader parses the flat input files into typed records.
// Implementations return an error wrapping ErrFileFormat when a file is
// missing or its content cannot be decoded.
type RecordReader interface {
	// ReadRooms reads and decodes the rooms input file.
	ReadRooms(path string) ([]Room, error)

	// ReadStudents reads and decodes the students input file.
	ReadStudents(path string) ([]Student, error)
}
