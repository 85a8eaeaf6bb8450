package roomcensus_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error returns success",
			err:  nil,
			want: roomcensus.ExitSuccess,
		},
		{
			name: "invalid config error",
			err:  roomcensus.ErrInvalidConfig,
			want: roomcensus.ExitConfigError,
		},
		{
			name: "wrapped invalid config error",
			err:  fmt.Errorf("resolving parameters: %w", roomcensus.ErrInvalidConfig),
			want: roomcensus.ExitConfigError,
		},
		{
			name: "connection failed error",
			err:  roomcensus.ErrConnectionFailed,
			want: roomcensus.ExitConnectionError,
		},
		{
			name: "database error",
			err:  roomcensus.ErrDatabase,
			want: roomcensus.ExitDatabaseError,
		},
		{
			name: "wrapped database error",
			err:  fmt.Errorf("executing students_per_room: %w", roomcensus.ErrDatabase),
			want: roomcensus.ExitDatabaseError,
		},
		{
			name: "unknown query error",
			err:  roomcensus.ErrUnknownQuery,
			want: roomcensus.ExitUnknownQuery,
		},
		{
			name: "unsupported format error",
			err:  roomcensus.ErrUnsupportedFormat,
			want: roomcensus.ExitUnsupportedFormat,
		},
		{
			name: "file format error",
			err:  roomcensus.ErrFileFormat,
			want: roomcensus.ExitFileFormatError,
		},
		{
			name: "unknown flag usage error",
			err:  errors.New("unknown flag: --bogus"),
			want: roomcensus.ExitUsageError,
		},
		{
			name: "wrong argument count usage error",
			err:  errors.New("accepts 2 arg(s), received 1"),
			want: roomcensus.ExitUsageError,
		},
		{
			name: "connection refused string pattern",
			err:  errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			want: roomcensus.ExitConnectionError,
		},
		{
			name: "unresolvable host string pattern",
			err:  errors.New("lookup db.invalid: no such host"),
			want: roomcensus.ExitConnectionError,
		},
		{
			name: "generic error",
			err:  errors.New("something unexpected"),
			want: roomcensus.ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roomcensus.ExitCodeForError(tt.err)
			if got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
