package shell

import (
	"context"
	"errors"
	"os/exec"
	"syscall"

	"go.trai.ch/jot/internal/core/domain"
)

// outcome maps the error returned by exec.Cmd.Wait onto an OutputError.
// A nil result means the process exited with status zero. A child that exits cleanly
// after the context interrupted it is reported as terminated by SIGINT.
func outcome(err error) *domain.OutputError {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &domain.OutputError{Kind: domain.OutputSignal, Signal: int(syscall.SIGINT)}
		}
		return &domain.OutputError{Kind: domain.OutputIO, Err: err}
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return &domain.OutputError{Kind: domain.OutputCode, Code: code}
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return &domain.OutputError{Kind: domain.OutputSignal, Signal: int(status.Signal())}
	}
	return &domain.OutputError{Kind: domain.OutputUnknown}
}

// recipeError turns the outcome of a recipe process into a catalog error.
// Launch failures are left to the caller since they differ between line and script mode.
func recipeError(out *domain.OutputError, cmd *domain.Command, line int) error {
	switch out.Kind {
	case domain.OutputCode:
		return &domain.CodeError{
			Recipe:       cmd.Recipe,
			Line:         line,
			Code:         out.Code,
			PrintMessage: !cmd.NoExitMessage,
		}
	case domain.OutputSignal:
		return &domain.SignalError{Recipe: cmd.Recipe, Line: line, Signal: out.Signal}
	default:
		return &domain.UnknownFailureError{Recipe: cmd.Recipe, Line: line}
	}
}
