package roomcensus

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := runner.Run(ctx, conn, name)
//	if errors.Is(err, roomcensus.ErrUnknownQuery) {
//	    // Handle a query name that is not in the catalog
//	}
var (
	// ErrInvalidConfig indicates the resolved configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDatabase indicates a database operation (DDL, insert, query) failed.
	ErrDatabase = errors.New("database error")

	// ErrUnknownQuery indicates the requested query name is not in the catalog.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrUnsupportedFormat indicates the requested export format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrFileFormat indicates an input data file is missing or malformed.
	ErrFileFormat = errors.New("invalid input file")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrFileFormat):
		return ExitFileFormatError
	case errors.Is(err, ErrUnknownQuery):
		return ExitUnknownQuery
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrDatabase):
		return ExitDatabaseError
	}

	// Cobra reports flag and argument misuse as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "arg(s)") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
