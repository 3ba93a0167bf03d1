package shell

import (
	"context"
	"io"
	"os"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// ProcessRunner implements ports.ProcessRunner for editors, choosers and `exec`.
type ProcessRunner struct{}

// NewProcessRunner creates a new ProcessRunner.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run starts p and waits for it. The status is -1 when the process ended without
// an exit code, as when it was killed by a signal. Pipes requested through
// p.Stdin and p.Stdout are pumped concurrently so a chooser can read its whole
// input while writing output.
func (r *ProcessRunner) Run(ctx context.Context, p *ports.Process) (int, error) {
	env := resolveEnvironment(os.Environ(), p.Env)
	proc := commandFor(ctx, p.Program, env, p.Args...)
	proc.Dir = p.Dir
	proc.Stdin, proc.Stdout, proc.Stderr = os.Stdin, os.Stdout, os.Stderr

	var (
		stdin  io.WriteCloser
		stdout io.ReadCloser
		err    error
	)
	if p.Stdin != nil {
		if stdin, err = proc.StdinPipe(); err != nil {
			return 0, err
		}
	}
	if p.Stdout != nil {
		if stdout, err = proc.StdoutPipe(); err != nil {
			return 0, err
		}
	}

	if err := proc.Start(); err != nil {
		return 0, err
	}

	var g errgroup.Group
	if stdin != nil {
		g.Go(func() error {
			_, err := io.Copy(stdin, p.Stdin)
			if closeErr := stdin.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return &ports.PipeError{Direction: ports.PipeStdin, Err: err}
			}
			return nil
		})
	}
	if stdout != nil {
		g.Go(func() error {
			if _, err := io.Copy(p.Stdout, stdout); err != nil {
				return &ports.PipeError{Direction: ports.PipeStdout, Err: err}
			}
			return nil
		})
	}
	pipeErr := g.Wait()

	out := outcome(proc.Wait())
	if pipeErr != nil {
		return 0, pipeErr
	}
	if out == nil {
		return 0, nil
	}
	switch out.Kind {
	case domain.OutputCode:
		return out.Code, nil
	case domain.OutputIO:
		return 0, out.Err
	default:
		return -1, nil
	}
}
