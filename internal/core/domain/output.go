package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// OutputKind classifies how a subprocess failed.
type OutputKind int

const (
	// OutputCode means the process exited with a nonzero status.
	OutputCode OutputKind = iota
	// OutputSignal means the process was terminated by a signal.
	OutputSignal
	// OutputUnknown means the process ended without a code or a signal.
	OutputUnknown
	// OutputIO means the process could not be launched.
	OutputIO
	// OutputUtf8 means the process succeeded but its output was not valid UTF-8.
	OutputUtf8
)

// OutputError is the outcome of a captured subprocess that did not succeed.
type OutputError struct {
	Kind   OutputKind
	Code   int
	Signal int
	Err    error
}

func (e *OutputError) Error() string {
	switch e.Kind {
	case OutputCode:
		return fmt.Sprintf("Process exited with status code %d", e.Code)
	case OutputSignal:
		return fmt.Sprintf("Process terminated by signal %d", e.Signal)
	case OutputUnknown:
		return "Process experienced an unknown failure"
	case OutputIO:
		return e.Err.Error()
	case OutputUtf8:
		return fmt.Sprintf("Could not convert process stdout to UTF-8: %v", e.Err)
	default:
		return "unknown process failure"
	}
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// LaunchKind distinguishes why a process could not be started.
type LaunchKind int

const (
	// LaunchOther covers every launch failure not listed below.
	LaunchOther LaunchKind = iota
	// LaunchNotFound means the program does not exist.
	LaunchNotFound
	// LaunchPermission means the program exists but cannot be run.
	LaunchPermission
)

// ClassifyLaunch inspects a launch error.
func ClassifyLaunch(err error) LaunchKind {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return LaunchNotFound
	case errors.Is(err, fs.ErrPermission):
		return LaunchPermission
	default:
		return LaunchOther
	}
}
