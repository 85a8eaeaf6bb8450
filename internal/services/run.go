// Package services orchestrates the load-query-export cycle.
package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kvolkava/roomcensus/internal/db"
	"github.com/kvolkava/roomcensus/internal/schema"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

type maintenanceConnFunc func(ctx context.Context, connConfig *roomcensus.ConnectionConfig, dbName string) (roomcensus.DBConnection, func(), error)

// RunService executes one load-query-export cycle.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type RunService struct {
	connectorFactory func(*roomcensus.ConnectionConfig) (roomcensus.Connector, error)
	logger           roomcensus.Logger
	sessionManager   roomcensus.SessionPreparer
	reader           roomcensus.RecordReader
	recordLoader     roomcensus.RecordLoader
	queryRunner      roomcensus.QueryRunner
	exporter         roomcensus.Exporter
	dbManager        roomcensus.DatabaseManager
	maintConnector   maintenanceConnFunc
}

// NewRunService creates a new RunService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at application startup, not during the run. Runtime conditions
// (bad config, connection failures, malformed files) are returned as
// errors from Run instead.
func NewRunService(
	connectorFactory func(*roomcensus.ConnectionConfig) (roomcensus.Connector, error),
	logger roomcensus.Logger,
	sessionManager roomcensus.SessionPreparer,
	reader roomcensus.RecordReader,
	recordLoader roomcensus.RecordLoader,
	queryRunner roomcensus.QueryRunner,
	exporter roomcensus.Exporter,
	dbManager roomcensus.DatabaseManager,
) *RunService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if sessionManager == nil {
		panic("sessionManager cannot be nil")
	}
	if reader == nil {
		panic("reader cannot be nil")
	}
	if recordLoader == nil {
		panic("recordLoader cannot be nil")
	}
	if queryRunner == nil {
		panic("queryRunner cannot be nil")
	}
	if exporter == nil {
		panic("exporter cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}

	svc := &RunService{
		connectorFactory: connectorFactory,
		logger:           logger,
		sessionManager:   sessionManager,
		reader:           reader,
		recordLoader:     recordLoader,
		queryRunner:      queryRunner,
		exporter:         exporter,
		dbManager:        dbManager,
	}
	svc.maintConnector = svc.defaultMaintConnector
	return svc
}

func (s *RunService) defaultMaintConnector(ctx context.Context, connConfig *roomcensus.ConnectionConfig, dbName string) (roomcensus.DBConnection, func(), error) {
	maintConfig := *connConfig
	maintConfig.Database = dbName

	connector, err := s.connectorFactory(&maintConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to maintenance database: %w", err)
	}

	dbConn := db.NewPoolAdapter(pool)
	cleanup := func() { pool.Close() }
	return dbConn, cleanup, nil
}

// Run executes one load-query-export cycle using the provided
// configuration. Every failure terminates the cycle; nothing is retried.
func (s *RunService) Run(ctx context.Context, config roomcensus.RunConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Resolve the query list up front so an unknown name fails before any
	// database work and before any output file is written.
	queries, err := s.resolveQueries(config.Queries)
	if err != nil {
		return err
	}

	// Parse input files before touching the database; a malformed file
	// should not leave a half-created schema behind a connection attempt.
	rooms, err := s.reader.ReadRooms(config.RoomsFile)
	if err != nil {
		return err
	}
	students, err := s.reader.ReadStudents(config.StudentsFile)
	if err != nil {
		return err
	}
	s.logger.Verbose("Parsed %d rooms and %d students", len(rooms), len(students))

	if err := s.ensureDatabaseExists(ctx, &config.Connection, config.MaintenanceDatabase); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	session, err := s.sessionManager.PrepareSession(ctx, &config.Connection)
	if err != nil {
		return err // Error already wrapped by SessionManager
	}
	defer session.Close()

	if err := s.initializeSchema(ctx, session.Conn()); err != nil {
		return err
	}

	if err := s.loadRecords(ctx, session.Conn(), rooms, students); err != nil {
		return err
	}

	results, err := s.executeQueries(ctx, session.Conn(), queries)
	if err != nil {
		return err
	}

	path, err := s.exporter.Export(results, config.Format)
	if err != nil {
		return err
	}
	s.logger.Info("✓ File %q was created", path)

	return nil
}

// resolveQueries validates requested query names against the catalog.
// An empty request means the whole catalog in declared order.
func (s *RunService) resolveQueries(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return s.queryRunner.Names(), nil
	}

	known := make(map[string]bool)
	for _, name := range s.queryRunner.Names() {
		known[name] = true
	}
	for _, name := range requested {
		if !known[name] {
			return nil, fmt.Errorf("query %q is not in the catalog: %w", name, roomcensus.ErrUnknownQuery)
		}
	}
	return requested, nil
}

// ensureDatabaseExists creates the target database when it is missing,
// connecting through the maintenance database.
func (s *RunService) ensureDatabaseExists(ctx context.Context, connConfig *roomcensus.ConnectionConfig, maintenanceDB string) error {
	if maintenanceDB == "" {
		maintenanceDB = roomcensus.DefaultMaintenanceDB
	}

	maintConn, cleanup, err := s.maintConnector(ctx, connConfig, maintenanceDB)
	if err != nil {
		return err
	}
	defer cleanup()

	exists, err := s.dbManager.Exists(ctx, maintConn, connConfig.Database)
	if err != nil {
		return fmt.Errorf("%v: %w", err, roomcensus.ErrDatabase)
	}
	if exists {
		s.logger.Verbose("Database %q already exists", connConfig.Database)
		return nil
	}

	if err := s.dbManager.Create(ctx, maintConn, connConfig.Database); err != nil {
		return fmt.Errorf("%v: %w", err, roomcensus.ErrDatabase)
	}
	s.logger.Info("✓ Database %q was created", connConfig.Database)
	return nil
}

func (s *RunService) initializeSchema(ctx context.Context, conn *pgxpool.Conn) error {
	s.logger.Verbose("Creating rooms and students tables if absent...")
	if err := schema.EnsureTables(ctx, conn); err != nil {
		return err
	}
	s.logger.Info("✓ Tables rooms and students are ready")
	return nil
}

func (s *RunService) loadRecords(ctx context.Context, conn *pgxpool.Conn, rooms []roomcensus.Room, students []roomcensus.Student) error {
	// Rooms first: students carry the foreign key.
	if err := s.recordLoader.LoadRooms(ctx, conn, rooms); err != nil {
		return err
	}
	s.logger.Info("✓ Loaded %d rooms", len(rooms))

	if err := s.recordLoader.LoadStudents(ctx, conn, students); err != nil {
		return err
	}
	s.logger.Info("✓ Loaded %d students", len(students))
	return nil
}

func (s *RunService) executeQueries(ctx context.Context, conn *pgxpool.Conn, names []string) ([]roomcensus.NamedResult, error) {
	results := make([]roomcensus.NamedResult, 0, len(names))
	for _, name := range names {
		s.logger.Verbose("Executing query %q", name)
		rs, err := s.queryRunner.Run(ctx, conn, name)
		if err != nil {
			return nil, err
		}
		results = append(results, roomcensus.NamedResult{Name: name, Result: rs})
	}
	s.logger.Info("✓ Queries were completed (%d)", len(names))
	return results, nil
}
