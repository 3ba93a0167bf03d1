package shell

import (
	"context"
	"strings"

	"go.trai.ch/jot/internal/core/ports"
)

var cygpathCommand = []string{"cygpath", "--windows"}

// CygpathTranslator implements ports.PathTranslator by running `cygpath --windows`.
type CygpathTranslator struct {
	runner ports.BacktickRunner
}

// NewCygpathTranslator creates a translator that captures cygpath's output through runner.
func NewCygpathTranslator(runner ports.BacktickRunner) *CygpathTranslator {
	return &CygpathTranslator{runner: runner}
}

// Translate returns the Windows form of path.
func (t *CygpathTranslator) Translate(ctx context.Context, path string) (string, error) {
	out, err := t.runner.Capture(ctx, cygpathCommand, path, nil, "")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\r\n"), nil
}
