package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kvolkava/roomcensus/internal/catalog"
	"github.com/kvolkava/roomcensus/internal/config"
	"github.com/kvolkava/roomcensus/internal/db"
	"github.com/kvolkava/roomcensus/internal/db/manager"
	"github.com/kvolkava/roomcensus/internal/export"
	"github.com/kvolkava/roomcensus/internal/files"
	"github.com/kvolkava/roomcensus/internal/loader"
	"github.com/kvolkava/roomcensus/internal/logging"
	"github.com/kvolkava/roomcensus/internal/runner"
	"github.com/kvolkava/roomcensus/internal/services"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <rooms_file> <students_file>",
	Short: "Load data files, run the query catalog, export the results",
	Long: `Run executes one load-query-export cycle:

1. Connects to PostgreSQL and creates the database if it is missing
2. Creates the rooms and students tables if they are missing
3. Loads the rooms and students JSON files into the tables
4. Runs the requested catalog queries (all of them by default)
5. Writes result.json or result.xml to the working directory

Arguments:
  rooms_file      Path to the JSON file with rooms
  students_file   Path to the JSON file with students

Connection parameters resolve with the precedence:
  flag > environment (PGHOST, PGPORT, PGUSER, PGPASSWORD, PGDATABASE,
  also loaded from a .env file if present) > roomcensus.yaml > defaults.

Password Handling:
  --db-password is accepted for parity with the environment defaults, but
  prefer $PGPASSWORD or --prompt-password: flag values are visible in
  shell history and the process list.

Examples:
  # Load and export everything as JSON
  roomcensus run rooms.json students.json --db-name census

  # Export a single query as XML
  roomcensus run rooms.json students.json -d census \
    --query students_per_room --format xml

  # Override connection parameters explicitly
  roomcensus run rooms.json students.json \
    --db-host db.internal --db-port 5433 --db-user loader -d census`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

type runFlagValues struct {
	format                 string
	queries                []string
	dbName, dbUser, dbHost string
	dbPassword, sslMode    string
	dbPort                 int
	promptPassword         bool
	timeout                time.Duration
}

var runFlags runFlagValues

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.format, "format", "f", roomcensus.FormatJSON,
		"Output file format: json|xml")
	runCmd.Flags().StringSliceVar(&runFlags.queries, "query", nil,
		"Catalog query to run (can be specified multiple times)\n"+
			"Default: the whole catalog. See 'roomcensus queries' for names")

	// Granular connection flags
	// Precedence: flag > environment variable > roomcensus.yaml > default
	runCmd.Flags().StringVarP(&runFlags.dbHost, "db-host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --db-host > $PGHOST > roomcensus.yaml > localhost")
	runCmd.Flags().IntVarP(&runFlags.dbPort, "db-port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --db-port > $PGPORT > roomcensus.yaml > 5432")
	runCmd.Flags().StringVarP(&runFlags.dbUser, "db-user", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	runCmd.Flags().StringVarP(&runFlags.dbName, "db-name", "d", "",
		"Target database name (required via flag, $PGDATABASE, or roomcensus.yaml)")
	runCmd.Flags().StringVar(&runFlags.dbPassword, "db-password", "",
		"Password for the PostgreSQL user (prefer $PGPASSWORD or --prompt-password)")
	runCmd.Flags().BoolVarP(&runFlags.promptPassword, "prompt-password", "W", false,
		"Read the password from the terminal without echo")
	runCmd.Flags().StringVar(&runFlags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")

	// Timeout flag - catastrophic failure protection, not normal timeout control
	runCmd.Flags().DurationVar(&runFlags.timeout, "timeout", roomcensus.DefaultTimeout,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues or an unresponsive server\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildRunConfig builds a RunConfig from CLI flags, environment, and the
// optional roomcensus.yaml. Extracted for testability.
func buildRunConfig(cmd *cobra.Command, args []string, verbose bool) (roomcensus.RunConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return roomcensus.RunConfig{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	password := runFlags.dbPassword
	if runFlags.promptPassword {
		password, err = promptPassword()
		if err != nil {
			return roomcensus.RunConfig{}, err
		}
	}

	flags := &config.Flags{
		Host:     runFlags.dbHost,
		Port:     runFlags.dbPort,
		Username: runFlags.dbUser,
		Database: runFlags.dbName,
		Password: password,
		SSLMode:  runFlags.sslMode,
	}

	connConfig, err := config.Resolve(flags, config.LoadFromEnvironment(), projectCfg)
	if err != nil {
		return roomcensus.RunConfig{}, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
		fmt.Fprintf(os.Stderr, "  Host: %s\n", connConfig.Host)
		fmt.Fprintf(os.Stderr, "  Port: %d\n", connConfig.Port)
		fmt.Fprintf(os.Stderr, "  User: %s\n", connConfig.Username)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", connConfig.Database)
		fmt.Fprintf(os.Stderr, "  SSL Mode: %s\n", connConfig.SSLMode)
	}

	// Apply timeout from roomcensus.yaml if --timeout wasn't explicitly set
	timeout := runFlags.timeout
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return roomcensus.RunConfig{}, fmt.Errorf("invalid timeout in %s: %v: %w",
				config.ConfigFileName, parseErr, roomcensus.ErrInvalidConfig)
		}
		timeout = parsed
	}

	return roomcensus.RunConfig{
		RoomsFile:           args[0],
		StudentsFile:        args[1],
		Format:              strings.ToLower(runFlags.format),
		Queries:             runFlags.queries,
		Connection:          *connConfig,
		MaintenanceDatabase: roomcensus.DefaultMaintenanceDB,
		Timeout:             timeout,
		Verbose:             verbose,
	}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	// Every run gets its own ID so database.log lines can be correlated.
	// The logger is opened first so configuration failures are logged too.
	runID := uuid.NewString()
	fileLogger, err := logging.NewFileLogger(roomcensus.LogFileName, runID, verbose)
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	logger := logging.NewTeeLogger(logging.NewConsoleLogger(verbose), fileLogger)

	runConfig, err := buildRunConfig(cmd, args, verbose)
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	cat, err := catalog.Default()
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	sessionManager := services.NewSessionManager(db.NewConnector, logger)
	service := services.NewRunService(
		db.NewConnector,
		logger,
		sessionManager,
		files.NewReader(),
		loader.NewLoader(),
		runner.NewRunner(cat),
		export.NewWriter(),
		manager.New(),
	)

	// Setup context with timeout and signal handling for graceful shutdown.
	// A zero timeout disables the deadline.
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if runConfig.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), runConfig.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling run...")
		cancel()
	}()

	if err := service.Run(ctx, runConfig); err != nil {
		logger.Error("%v", err)
		return err
	}

	return nil
}
