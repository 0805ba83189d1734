package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0
	ExitError    = 1 // Runtime error
	ExitConfig   = 2 // Configuration could not be loaded or is invalid
	ExitDegraded = 3 // The platform could not be reached; output is partial
)

// configError marks a failure to load or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return "config: " + e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

// DegradedError reports that a command completed with fallback data.
type DegradedError struct {
	Reason string
}

func (e *DegradedError) Error() string {
	return "degraded: " + e.Reason
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var cfgErr *configError
	var degErr *DegradedError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &degErr):
		return ExitDegraded
	case errors.As(err, &cfgErr):
		return ExitConfig
	default:
		return ExitError
	}
}
