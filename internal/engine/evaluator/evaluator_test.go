package evaluator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports/mocks"
	"go.trai.ch/jot/internal/engine/evaluator"
	"go.uber.org/mock/gomock"
)

func newEvaluator(t *testing.T) (*evaluator.Evaluator, *mocks.MockBacktickRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockBacktickRunner(ctrl)
	return evaluator.New(runner, evaluator.Config{WorkDir: "/work"}), runner
}

func scopeOf(pairs ...string) *domain.Scope {
	bindings := make([]domain.Binding, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		bindings = append(bindings, domain.Binding{Name: pairs[i], Value: pairs[i+1]})
	}
	return domain.NewScope(domain.NewLayer("test", bindings...))
}

func TestEvaluate_LiteralOnly(t *testing.T) {
	// The runner mock has no expectations, so any backtick would fail the test.
	ev, _ := newEvaluator(t)

	expr := domain.Concatenation{Parts: []domain.Expression{
		domain.Literal{Text: "echo "},
		domain.Literal{Text: "'a  b'\t$HOME"},
	}}
	got, err := ev.Evaluate(context.Background(), expr, nil)

	require.NoError(t, err)
	assert.Equal(t, "echo 'a  b'\t$HOME", got)
}

func TestEvaluate_Variable(t *testing.T) {
	ev, _ := newEvaluator(t)
	scope := scopeOf("variable", "v", "value", "w")

	got, err := ev.Evaluate(context.Background(), domain.Variable{Name: "variable"}, scope)
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	token := domain.Token{Path: "jot.yaml", Line: 3, Column: 7, Lexeme: "varaible"}
	_, err = ev.Evaluate(context.Background(), domain.Variable{Name: "varaible", Token: token}, scope)

	var unknown *domain.UnknownVariableError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "varaible", unknown.Variable)
	assert.Equal(t, "variable", unknown.Suggestion())
	assert.Equal(t, token, unknown.Location())
}

func TestEvaluate_Backtick(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{name: "single newline", stdout: "hello\n", want: "hello"},
		{name: "mixed trailing newlines", stdout: "hello\r\n\n\r\n", want: "hello"},
		{name: "inner newlines kept", stdout: "a\n\nb\n", want: "a\n\nb"},
		{name: "trailing spaces kept", stdout: " x \n", want: " x "},
		{name: "lone carriage return kept", stdout: "x\r", want: "x\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, runner := newEvaluator(t)
			runner.EXPECT().
				Capture(gomock.Any(), domain.DefaultShell, "echo hello", gomock.Any(), "/work").
				Return(tt.stdout, nil)

			expr := domain.Backtick{Command: domain.Literal{Text: "echo hello"}}
			got, err := ev.Evaluate(context.Background(), expr, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_BacktickFailure(t *testing.T) {
	ev, runner := newEvaluator(t)
	token := domain.Token{Line: 2, Lexeme: "`exit 4`"}

	runner.EXPECT().Capture(gomock.Any(), gomock.Any(), "exit 4", gomock.Any(), gomock.Any()).
		Return("", &domain.OutputError{Kind: domain.OutputCode, Code: 4})
	_, err := ev.Evaluate(context.Background(), domain.Backtick{Command: domain.Literal{Text: "exit 4"}, Token: token}, nil)

	var backtick *domain.BacktickError
	require.ErrorAs(t, err, &backtick)
	assert.Equal(t, domain.OutputCode, backtick.Output.Kind)
	assert.Equal(t, 4, backtick.Output.Code)
	assert.Equal(t, token, backtick.Location())
	assert.Equal(t, 4, domain.ExitCode(err))

	runner.EXPECT().Capture(gomock.Any(), gomock.Any(), "boom", gomock.Any(), gomock.Any()).
		Return("", errors.New("pipe closed"))
	_, err = ev.Evaluate(context.Background(), domain.Backtick{Command: domain.Literal{Text: "boom"}}, nil)

	require.ErrorAs(t, err, &backtick)
	assert.Equal(t, domain.OutputIO, backtick.Output.Kind)
}

func TestEvaluate_BacktickReceivesExports(t *testing.T) {
	ev, runner := newEvaluator(t)
	scope := domain.NewScope(domain.NewLayer("assignments",
		domain.Binding{Name: "TOKEN", Value: "secret", Export: true},
		domain.Binding{Name: "local", Value: "x"},
	))

	runner.EXPECT().
		Capture(gomock.Any(), gomock.Any(), "echo $TOKEN", map[string]string{"TOKEN": "secret"}, "/work").
		Return("secret\n", nil)

	got, err := ev.Evaluate(context.Background(), domain.Backtick{Command: domain.Literal{Text: "echo $TOKEN"}}, scope)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestEvaluateAssignments(t *testing.T) {
	ctx := context.Background()

	t.Run("later assignments see earlier ones", func(t *testing.T) {
		ev, _ := newEvaluator(t)
		assignments := []domain.Assignment{
			{Name: "a", Value: domain.Literal{Text: "1"}},
			{Name: "b", Value: domain.Concatenation{Parts: []domain.Expression{
				domain.Variable{Name: "a"}, domain.Literal{Text: "2"},
			}}, Export: true},
		}

		layer, err := ev.EvaluateAssignments(ctx, assignments, domain.NewScope(), nil)
		require.NoError(t, err)

		b, ok := layer.Lookup("b")
		require.True(t, ok)
		assert.Equal(t, "12", b.Value)
		assert.True(t, b.Export)
	})

	t.Run("forward reference is unknown", func(t *testing.T) {
		ev, _ := newEvaluator(t)
		assignments := []domain.Assignment{
			{Name: "a", Value: domain.Variable{Name: "b"}},
			{Name: "b", Value: domain.Literal{Text: "2"}},
		}

		_, err := ev.EvaluateAssignments(ctx, assignments, domain.NewScope(), nil)
		var unknown *domain.UnknownVariableError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "b", unknown.Variable)
	})

	t.Run("override skips evaluation", func(t *testing.T) {
		ev, _ := newEvaluator(t)
		assignments := []domain.Assignment{
			{Name: "version", Value: domain.Backtick{Command: domain.Literal{Text: "git describe"}}},
			{Name: "tag", Value: domain.Concatenation{Parts: []domain.Expression{
				domain.Literal{Text: "v"}, domain.Variable{Name: "version"},
			}}},
		}

		layer, err := ev.EvaluateAssignments(ctx, assignments, domain.NewScope(), map[string]string{"version": "1.2"})
		require.NoError(t, err)

		tag, _ := layer.Lookup("tag")
		assert.Equal(t, "v1.2", tag.Value)
	})
}
