package roomcensus

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Load-query-export cycle completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid or incomplete connection parameters
	ExitConnectionError   = 11 // Failed to connect to database
	ExitDatabaseError     = 13 // DDL, insert, or query execution failed
	ExitFileFormatError   = 14 // Rooms or students file missing or malformed
	ExitUnknownQuery      = 15 // Requested query name not in the catalog
	ExitUnsupportedFormat = 16 // Requested export format not supported
)

const (
	// DefaultHost is the database host used when no flag, environment
	// variable, or config file value is provided.
	DefaultHost = "localhost"

	// DefaultPort is the standard PostgreSQL port.
	DefaultPort = 5432

	// DefaultMaintenanceDB is the database to connect to for CREATE DATABASE
	// operations before the target database exists.
	DefaultMaintenanceDB = "postgres"

	// DefaultTimeout is the catastrophic failure protection timeout for one
	// load-query-export cycle.
	DefaultTimeout = 3 * time.Minute

	// LogFileName is the informational log file written in the working directory.
	LogFileName = "database.log"

	// ResultFilePrefix is the base name of the export file; the format
	// extension is appended ("result.json", "result.xml").
	ResultFilePrefix = "result"
)
