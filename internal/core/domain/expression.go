package domain

import (
	"strconv"
	"strings"
)

// Expression is a node of the expression tree embedded in recipe text.
// The set of variants is closed.
type Expression interface {
	isExpression()
}

// Literal is verbatim text.
type Literal struct {
	Text string
}

// Variable references a name resolved through the scope.
type Variable struct {
	Name  string
	Token Token
}

// Call invokes a built-in function.
type Call struct {
	Name      string
	Arguments []Expression
	Token     Token
}

// Backtick runs Command through the shell and evaluates to its standard output.
type Backtick struct {
	Command Expression
	Token   Token
}

// Concatenation joins the values of its parts.
type Concatenation struct {
	Parts []Expression
}

func (Literal) isExpression()       {}
func (Variable) isExpression()      {}
func (Call) isExpression()          {}
func (Backtick) isExpression()      {}
func (Concatenation) isExpression() {}

// FormatExpression renders expr in the expression syntax of the recipe file.
func FormatExpression(expr Expression) string {
	switch e := expr.(type) {
	case nil:
		return ""
	case Literal:
		return strconv.Quote(e.Text)
	case Variable:
		return e.Name
	case Call:
		args := make([]string, len(e.Arguments))
		for i, arg := range e.Arguments {
			args[i] = FormatExpression(arg)
		}
		return e.Name + "(" + strings.Join(args, ", ") + ")"
	case Backtick:
		if lit, ok := e.Command.(Literal); ok {
			return "`" + lit.Text + "`"
		}
		return "`" + FormatExpression(e.Command) + "`"
	case Concatenation:
		parts := make([]string, len(e.Parts))
		for i, part := range e.Parts {
			parts[i] = FormatExpression(part)
		}
		return strings.Join(parts, " + ")
	default:
		return ""
	}
}

// IsLiteral reports whether expr can be evaluated without a scope, a function or a subprocess.
func IsLiteral(expr Expression) bool {
	switch e := expr.(type) {
	case Literal:
		return true
	case Concatenation:
		for _, part := range e.Parts {
			if !IsLiteral(part) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
