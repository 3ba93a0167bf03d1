package evaluator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/engine/evaluator"
)

func literalLines(texts ...string) []domain.Line {
	lines := make([]domain.Line, len(texts))
	for i, text := range texts {
		if text != "" {
			lines[i].Parts = []domain.Expression{domain.Literal{Text: text}}
		}
	}
	return lines
}

func TestRender_Script(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{WorkDir: "/work", TempDir: "/scratch"})
	r := &domain.Recipe{
		Name: domain.NewInternedString("script"),
		Body: literalLines("#!/usr/bin/env bash", "echo hi"),
	}

	cmd, err := ev.Render(context.Background(), r, domain.NewScope())
	require.NoError(t, err)

	require.True(t, cmd.IsScript())
	assert.Equal(t, "/usr/bin/env", cmd.Shebang.Interpreter)
	assert.Equal(t, "bash", cmd.Shebang.Argument)
	assert.Equal(t, "echo hi", cmd.Script)
	assert.Equal(t, "/work", cmd.WorkDir)
	assert.Equal(t, "/scratch", cmd.TempDir)
	assert.Empty(t, cmd.Lines)
}

func TestRender_ScriptInterpolatesShebang(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{
		Name: domain.NewInternedString("py"),
		Body: []domain.Line{
			{Parts: []domain.Expression{domain.Literal{Text: "#!/usr/bin/env "}, domain.Variable{Name: "python"}}},
			{Parts: []domain.Expression{domain.Literal{Text: "print('"}, domain.Variable{Name: "msg"}, domain.Literal{Text: "')"}}},
			{},
			{Parts: []domain.Expression{domain.Literal{Text: "print('done')"}}},
		},
	}

	cmd, err := ev.Render(context.Background(), r, scopeOf("python", "python3", "msg", "hi"))
	require.NoError(t, err)

	assert.Equal(t, "python3", cmd.Shebang.Argument)
	assert.Equal(t, "print('hi')\n\nprint('done')", cmd.Script)
}

func TestRender_Lines(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{WorkDir: "/work"})
	r := &domain.Recipe{
		Name: domain.NewInternedString("build"),
		Body: literalLines(
			"echo one",
			"@echo two",
			"-false",
			"@-true",
			"",
			`echo a \`,
			"    b",
			"@",
		),
		Attributes: domain.Attributes{WorkingDirectory: "sub"},
	}

	cmd, err := ev.Render(context.Background(), r, domain.NewScope())
	require.NoError(t, err)

	assert.False(t, cmd.IsScript())
	assert.Equal(t, "/work/sub", cmd.WorkDir)
	assert.Equal(t, []domain.CommandLine{
		{Text: "echo one", Number: 1},
		{Text: "echo two", Number: 2, Quiet: true},
		{Text: "false", Number: 3, Infallible: true},
		{Text: "true", Number: 4, Quiet: true, Infallible: true},
		{Text: "echo a b", Number: 6},
	}, cmd.Lines)
}

func TestRender_QuietAttributeInvertsSigil(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{
		Name:       domain.NewInternedString("quiet"),
		Body:       literalLines("echo hidden", "@echo shown"),
		Attributes: domain.Attributes{Quiet: true, NoExitMessage: true},
	}

	cmd, err := ev.Render(context.Background(), r, domain.NewScope())
	require.NoError(t, err)

	require.Len(t, cmd.Lines, 2)
	assert.True(t, cmd.Lines[0].Quiet)
	assert.False(t, cmd.Lines[1].Quiet)
	assert.True(t, cmd.NoExitMessage)
}

func TestRender_SourceLineNumbers(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{
		Name: domain.NewInternedString("numbered"),
		Body: []domain.Line{
			{Parts: []domain.Expression{domain.Literal{Text: "exit 3"}}, Number: 12},
		},
	}

	cmd, err := ev.Render(context.Background(), r, domain.NewScope())
	require.NoError(t, err)
	assert.Equal(t, 12, cmd.Lines[0].Number)
}

func TestRender_InterpolationDoesNotProduceSigils(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{
		Name: domain.NewInternedString("flag"),
		Body: []domain.Line{{Parts: []domain.Expression{domain.Variable{Name: "cmd"}}}},
	}

	cmd, err := ev.Render(context.Background(), r, scopeOf("cmd", "-x"))
	require.NoError(t, err)
	assert.Equal(t, []domain.CommandLine{{Text: "-x", Number: 1}}, cmd.Lines)
}

func TestRender_Environment(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{Name: domain.NewInternedString("env"), Body: literalLines("env")}
	scope := domain.NewScope(domain.NewLayer("parameters",
		domain.Binding{Name: "TARGET", Value: "prod", Export: true},
		domain.Binding{Name: "hidden", Value: "x"},
	))

	cmd, err := ev.Render(context.Background(), r, scope)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TARGET": "prod"}, cmd.Env)
}

func TestRender_EvaluationErrorStopsRendering(t *testing.T) {
	ev := evaluator.New(nil, evaluator.Config{})
	r := &domain.Recipe{
		Name: domain.NewInternedString("broken"),
		Body: []domain.Line{{Parts: []domain.Expression{domain.Variable{Name: "missing"}}}},
	}

	_, err := ev.Render(context.Background(), r, domain.NewScope())
	var unknown *domain.UnknownVariableError
	assert.ErrorAs(t, err, &unknown)
}
