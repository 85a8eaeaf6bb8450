// Package logging provides concrete implementations of the roomcensus.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - FileLogger: Appends timestamped messages to database.log
//   - TeeLogger: Fans messages out to several loggers (console + file)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
