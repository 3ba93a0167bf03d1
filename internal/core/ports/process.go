package ports

import (
	"context"
	"io"
)

// Process describes an external program started on the user's behalf:
// an editor, a chooser or an arbitrary command.
type Process struct {
	Program string
	Args    []string
	Dir     string
	Env     map[string]string
	// Stdin is copied to the process when set; otherwise the terminal is inherited.
	Stdin io.Reader
	// Stdout receives the process output when set; otherwise the terminal is inherited.
	Stdout io.Writer
}

// PipeDirection tells which stream a PipeError happened on.
type PipeDirection int

const (
	// PipeStdin is the stream written to the process.
	PipeStdin PipeDirection = iota
	// PipeStdout is the stream read from the process.
	PipeStdout
)

// PipeError reports a failure moving data to or from a running process.
type PipeError struct {
	Direction PipeDirection
	Err       error
}

func (e *PipeError) Error() string {
	if e.Direction == PipeStdin {
		return "write to process: " + e.Err.Error()
	}
	return "read from process: " + e.Err.Error()
}

func (e *PipeError) Unwrap() error {
	return e.Err
}

// ProcessRunner starts external programs.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run waits for p and returns its exit status. A non-nil error means the
	// process could not be started or a *PipeError occurred.
	Run(ctx context.Context, p *Process) (int, error)
}
