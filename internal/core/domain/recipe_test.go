package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
)

func TestParseShebang(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		interpreter string
		argument    string
		ok          bool
	}{
		{name: "interpreter only", line: "#!/bin/sh", interpreter: "/bin/sh", ok: true},
		{name: "env with argument", line: "#!/usr/bin/env bash", interpreter: "/usr/bin/env", argument: "bash", ok: true},
		{name: "argument keeps inner spaces", line: "#!/usr/bin/env  python3 -u ", interpreter: "/usr/bin/env", argument: "python3 -u", ok: true},
		{name: "tab separator", line: "#!/bin/bash\t-e", interpreter: "/bin/bash", argument: "-e", ok: true},
		{name: "missing interpreter", line: "#!", ok: false},
		{name: "not a shebang", line: "echo hi", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shebang, ok := domain.ParseShebang(tt.line)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.interpreter, shebang.Interpreter)
			assert.Equal(t, tt.argument, shebang.Argument)
		})
	}
}

func TestRecipe_ArgumentRange(t *testing.T) {
	tests := []struct {
		name   string
		params []domain.Parameter
		min    int
		max    int
	}{
		{name: "no parameters", min: 0, max: 0},
		{
			name:   "required and default",
			params: []domain.Parameter{{Name: "a"}, {Name: "b", Default: domain.Literal{Text: "x"}}},
			min:    1,
			max:    2,
		},
		{
			name:   "one or more",
			params: []domain.Parameter{{Name: "a"}, {Name: "b"}, {Name: "rest", Kind: domain.VariadicOneOrMore}},
			min:    3,
			max:    -1,
		},
		{
			name:   "zero or more",
			params: []domain.Parameter{{Name: "a"}, {Name: "b"}, {Name: "rest", Kind: domain.VariadicZeroOrMore}},
			min:    2,
			max:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.Recipe{Name: domain.NewInternedString("r"), Parameters: tt.params}
			assert.Equal(t, tt.min, r.MinArguments())
			assert.Equal(t, tt.max, r.MaxArguments())
		})
	}
}

func TestRecipe_Signature(t *testing.T) {
	r := &domain.Recipe{
		Name: domain.NewInternedString("deploy"),
		Parameters: []domain.Parameter{
			{Name: "target"},
			{Name: "mode", Default: domain.Literal{Text: "debug"}},
			{Name: "flags", Kind: domain.VariadicZeroOrMore, Export: true},
		},
	}

	assert.Equal(t, `deploy target mode="debug" *$flags`, r.Signature())
}

func TestLine_Sigils(t *testing.T) {
	line := domain.Line{Parts: []domain.Expression{
		domain.Literal{Text: "@echo "},
		domain.Variable{Name: "x"},
		domain.Literal{Text: ` \`},
	}}

	assert.Equal(t, "@echo ", line.Prefix())
	assert.True(t, line.IsContinuation())
	assert.False(t, line.IsShebang())
	assert.False(t, line.IsEmpty())

	interpolated := domain.Line{Parts: []domain.Expression{domain.Variable{Name: "x"}}}
	assert.Empty(t, interpolated.Prefix())
	assert.False(t, interpolated.IsContinuation())
}

func TestRecipe_IsScript(t *testing.T) {
	script := &domain.Recipe{Body: []domain.Line{
		{Parts: []domain.Expression{domain.Literal{Text: "#!/usr/bin/env bash"}}},
		{Parts: []domain.Expression{domain.Literal{Text: "echo hi"}}},
	}}
	assert.True(t, script.IsScript())

	lines := &domain.Recipe{Body: []domain.Line{
		{Parts: []domain.Expression{domain.Literal{Text: "echo hi"}}},
	}}
	assert.False(t, lines.IsScript())
	assert.False(t, (&domain.Recipe{}).IsScript())
}

func TestFormatExpression(t *testing.T) {
	expr := domain.Concatenation{Parts: []domain.Expression{
		domain.Literal{Text: "v"},
		domain.Call{Name: "uppercase", Arguments: []domain.Expression{domain.Variable{Name: "name"}}},
		domain.Backtick{Command: domain.Literal{Text: "date"}},
	}}

	assert.Equal(t, "\"v\" + uppercase(name) + `date`", domain.FormatExpression(expr))
	assert.True(t, domain.IsLiteral(domain.Concatenation{Parts: []domain.Expression{
		domain.Literal{Text: "a"}, domain.Literal{Text: "b"},
	}}))
	assert.False(t, domain.IsLiteral(expr))
}
