// Package evaluator reduces recipe expressions to strings and renders recipe bodies into commands.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

// Config holds the run-wide values expressions may depend on.
type Config struct {
	// Shell runs backticks and line-mode commands.
	Shell []string
	// WorkDir is the directory of the recipe file. Backticks and relative paths resolve against it.
	WorkDir       string
	InvocationDir string
	RecipeFile    string
	Executable    string
	TempDir       string
	// Export marks every assignment and parameter as exported.
	Export   bool
	Unstable bool
	// Quiet suppresses command echo for every line.
	Quiet bool
}

// Evaluator evaluates expressions against a scope.
// Evaluation is pure apart from backticks and the environment-reading functions.
type Evaluator struct {
	runner ports.BacktickRunner
	cfg    Config
}

var (
	_ ports.ExpressionEvaluator = (*Evaluator)(nil)
	_ ports.Renderer            = (*Evaluator)(nil)
)

// New creates an Evaluator that runs backticks through runner.
func New(runner ports.BacktickRunner, cfg Config) *Evaluator {
	if len(cfg.Shell) == 0 {
		cfg.Shell = domain.DefaultShell
	}
	return &Evaluator{runner: runner, cfg: cfg}
}

// Config returns the configuration the evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate reduces expr to a string.
func (e *Evaluator) Evaluate(ctx context.Context, expr domain.Expression, scope *domain.Scope) (string, error) {
	switch x := expr.(type) {
	case nil:
		return "", nil
	case domain.Literal:
		return x.Text, nil
	case domain.Variable:
		value, ok := scope.Lookup(x.Name)
		if !ok {
			return "", &domain.UnknownVariableError{
				Variable: x.Name,
				Suggest:  domain.Suggest(x.Name, scope.Names()),
				Token:    x.Token,
			}
		}
		return value, nil
	case domain.Call:
		return e.call(ctx, x, scope)
	case domain.Backtick:
		return e.backtick(ctx, x, scope)
	case domain.Concatenation:
		var b strings.Builder
		for _, part := range x.Parts {
			value, err := e.Evaluate(ctx, part, scope)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
		}
		return b.String(), nil
	default:
		return "", &domain.InternalError{Message: fmt.Sprintf("unexpected expression %T", expr)}
	}
}

func (e *Evaluator) backtick(ctx context.Context, b domain.Backtick, scope *domain.Scope) (string, error) {
	command, err := e.Evaluate(ctx, b.Command, scope)
	if err != nil {
		return "", err
	}

	stdout, err := e.runner.Capture(ctx, e.cfg.Shell, command, scope.Exports(), e.cfg.WorkDir)
	if err != nil {
		var out *domain.OutputError
		if !errors.As(err, &out) {
			out = &domain.OutputError{Kind: domain.OutputIO, Err: err}
		}
		return "", &domain.BacktickError{Token: b.Token, Output: out}
	}
	return trimTrailingNewlines(stdout), nil
}

// trimTrailingNewlines strips every trailing "\n" and "\r\n".
func trimTrailingNewlines(s string) string {
	for {
		switch {
		case strings.HasSuffix(s, "\r\n"):
			s = s[:len(s)-2]
		case strings.HasSuffix(s, "\n"):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
}

// EvaluateAssignments evaluates the global assignments in declaration order on top of base.
// Each assignment sees only the assignments declared before it. An override replaces the
// assignment's value without evaluating its expression.
func (e *Evaluator) EvaluateAssignments(
	ctx context.Context,
	assignments []domain.Assignment,
	base *domain.Scope,
	overrides map[string]string,
) (*domain.Layer, error) {
	bindings := make([]domain.Binding, 0, len(assignments))
	for _, a := range assignments {
		value, overridden := overrides[a.Name]
		if !overridden {
			scope := base.With(domain.NewLayer("assignments", bindings...))
			v, err := e.Evaluate(ctx, a.Value, scope)
			if err != nil {
				return nil, err
			}
			value = v
		}
		bindings = append(bindings, domain.Binding{
			Name:   a.Name,
			Value:  value,
			Export: a.Export || e.cfg.Export,
		})
	}
	return domain.NewLayer("assignments", bindings...), nil
}

// RenderLine concatenates the evaluated parts of a body line.
func (e *Evaluator) RenderLine(ctx context.Context, line domain.Line, scope *domain.Scope) (string, error) {
	return e.Evaluate(ctx, domain.Concatenation{Parts: line.Parts}, scope)
}
