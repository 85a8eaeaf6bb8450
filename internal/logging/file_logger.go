package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// FileLogger appends timestamped log lines to a file (database.log by
// convention). Every line carries the run ID so lines from one batch run
// can be correlated after the fact.
// Safe for concurrent use by multiple goroutines.
type FileLogger struct {
	w       io.Writer
	runID   string
	verbose bool
	mu      sync.Mutex

	closer io.Closer
	now    func() time.Time
}

// NewFileLogger opens path in append mode (creating it if absent) and
// returns a FileLogger writing to it. The caller must Close() the logger
// to flush and release the underlying file.
func NewFileLogger(path, runID string, verbose bool) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	return &FileLogger{
		w:       f,
		runID:   runID,
		verbose: verbose,
		closer:  f,
		now:     time.Now,
	}, nil
}

// NewFileLoggerWithWriter returns a FileLogger writing to w.
// Intended for tests; Close() is a no-op when w is not a Closer.
func NewFileLoggerWithWriter(w io.Writer, runID string, verbose bool) *FileLogger {
	return &FileLogger{
		w:       w,
		runID:   runID,
		verbose: verbose,
		now:     time.Now,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *FileLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("DEBUG", format, args...)
}

// Info logs informational messages about normal operations.
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

// Error logs error messages.
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

// Close releases the underlying file. Idempotent.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *FileLogger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprintf(l.w, "%s - %s - %s - %s\n",
		l.now().Format("2006-01-02 15:04:05"), l.runID, level, msg)
}
