package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"slices"
	"unicode/utf8"

	"go.trai.ch/jot/internal/core/domain"
)

var errInvalidUTF8 = errors.New("invalid utf-8 sequence")

// Capture runs command through shell and returns its standard output verbatim.
// Standard input and standard error are inherited.
func (e *Executor) Capture(
	ctx context.Context,
	shell []string,
	command string,
	env map[string]string,
	dir string,
) (string, error) {
	if len(shell) == 0 {
		shell = domain.DefaultShell
	}
	stdin, _, stderr, _ := e.streams()

	var out bytes.Buffer
	proc := commandFor(ctx, shell[0], resolveEnvironment(os.Environ(), env), slices.Concat(shell[1:], []string{command})...)
	proc.Dir = dir
	proc.Stdin, proc.Stdout, proc.Stderr = stdin, &out, stderr

	if err := proc.Start(); err != nil {
		return "", &domain.OutputError{Kind: domain.OutputIO, Err: err}
	}
	if res := outcome(proc.Wait()); res != nil {
		return "", res
	}
	if !utf8.Valid(out.Bytes()) {
		return "", &domain.OutputError{Kind: domain.OutputUtf8, Err: errInvalidUTF8}
	}
	return out.String(), nil
}
