package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/kvolkava/roomcensus/internal/cli"
	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(roomcensus.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(roomcensus.ExitCodeForError(err))
	}
}
