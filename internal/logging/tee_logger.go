package logging

import "github.com/kvolkava/roomcensus/pkg/roomcensus"

// TeeLogger fans each log call out to all wrapped loggers in order.
// Safe for concurrent use as long as the wrapped loggers are.
type TeeLogger struct {
	loggers []roomcensus.Logger
}

// NewTeeLogger creates a TeeLogger over the given loggers.
// Nil entries are skipped.
func NewTeeLogger(loggers ...roomcensus.Logger) *TeeLogger {
	out := make([]roomcensus.Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return &TeeLogger{loggers: out}
}

// Verbose forwards to all wrapped loggers.
func (l *TeeLogger) Verbose(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Verbose(format, args...)
	}
}

// Info forwards to all wrapped loggers.
func (l *TeeLogger) Info(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Info(format, args...)
	}
}

// Error forwards to all wrapped loggers.
func (l *TeeLogger) Error(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Error(format, args...)
	}
}
