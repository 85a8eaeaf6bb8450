package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roomcensus",
	Short: "Load rooms and students into PostgreSQL and export query results",
	Long: `roomcensus loads two flat JSON files (rooms and students) into a
PostgreSQL database, runs a fixed catalog of analytical queries, and
exports the results to result.json or result.xml in the working
directory. Progress and errors are also written to database.log.

One shot, no daemon: the process exits after a single
load-query-export cycle.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid or incomplete connection parameters
  11 - Database connection failed
  13 - DDL, insert, or query execution failed
  14 - Rooms or students file missing or malformed
  15 - Requested query name not in the catalog
  16 - Requested export format not supported`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// Register --help without the -h shorthand so -h stays free for --db-host.
	rootCmd.PersistentFlags().Bool("help", false, "Help for roomcensus")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
