package roomcensus

import (
	"errors"
	"fmt"
	"time"
)

// Room is one record of the rooms input file.
// Created once during load; immutable thereafter.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Student is one record of the students input file.
// Room references Room.ID; referential integrity is enforced by the
// database foreign key, not by application logic.
type Student struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Sex      string    `json:"sex"`
	Room     int       `json:"room"`
}

// ResultSet is the ordered output of one catalog query execution.
// Columns preserves the projection order; each row holds one scalar per
// column at the matching index. Row order is database-defined and not
// otherwise guaranteed.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// NamedResult pairs a catalog query name with its result set, preserving
// the order queries were executed in for export.
type NamedResult struct {
	Name   string
	Result ResultSet
}

// Export formats accepted by the exporter.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// IsSupportedFormat reports whether format is one of the supported export
// formats. The check is exact; callers normalize case before calling.
func IsSupportedFormat(format string) bool {
	return format == FormatJSON || format == FormatXML
}

// ConnectionConfig represents resolved database connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
}

// RunConfig contains all parameters needed for one load-query-export cycle.
type RunConfig struct {
	// RoomsFile is the path to the rooms input file
	RoomsFile string

	// StudentsFile is the path to the students input file
	StudentsFile string

	// Format is the export format ("json" or "xml")
	Format string

	// Queries are the catalog query names to execute.
	// Empty means the whole catalog, in its declared order.
	Queries []string

	// Connection holds the resolved connection parameters for the target database
	Connection ConnectionConfig

	// MaintenanceDatabase is the database to connect to for CREATE DATABASE
	// operations. Typically "postgres".
	MaintenanceDatabase string

	// Timeout is the global timeout for the entire cycle
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.RoomsFile == "" {
		errs = append(errs, fmt.Errorf("rooms file is required: %w", ErrInvalidConfig))
	}

	if c.StudentsFile == "" {
		errs = append(errs, fmt.Errorf("students file is required: %w", ErrInvalidConfig))
	}

	if !IsSupportedFormat(c.Format) {
		errs = append(errs, fmt.Errorf("format %q is not supported as output file format: %w", c.Format, ErrUnsupportedFormat))
	}

	if c.Connection.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}

	if c.Connection.Username == "" {
		errs = append(errs, fmt.Errorf("database user is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
