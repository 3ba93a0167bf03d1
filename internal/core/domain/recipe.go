package domain

import (
	"strings"
)

// VariadicKind describes how many arguments a parameter accepts.
type VariadicKind int

const (
	// VariadicNone accepts exactly one argument.
	VariadicNone VariadicKind = iota
	// VariadicOneOrMore accepts one or more arguments.
	VariadicOneOrMore
	// VariadicZeroOrMore accepts any number of arguments.
	VariadicZeroOrMore
)

// Parameter is a named recipe input.
type Parameter struct {
	Name string
	// Default is nil when the parameter has no default.
	Default Expression
	Kind    VariadicKind
	Export  bool
}

// IsVariadic reports whether the parameter consumes the remaining arguments.
func (p Parameter) IsVariadic() bool {
	return p.Kind != VariadicNone
}

// IsRequired reports whether a caller must supply at least one argument for p.
func (p Parameter) IsRequired() bool {
	return p.Default == nil && p.Kind != VariadicZeroOrMore
}

// String renders the parameter the way it is written in a usage line.
func (p Parameter) String() string {
	var b strings.Builder
	switch p.Kind {
	case VariadicOneOrMore:
		b.WriteByte('+')
	case VariadicZeroOrMore:
		b.WriteByte('*')
	case VariadicNone:
	}
	if p.Export {
		b.WriteByte('$')
	}
	b.WriteString(p.Name)
	if p.Default != nil {
		b.WriteByte('=')
		b.WriteString(FormatExpression(p.Default))
	}
	return b.String()
}

// Dependency is a reference from one recipe to another, with argument expressions
// evaluated in the dependent recipe's scope.
type Dependency struct {
	Recipe    InternedString
	Arguments []Expression
}

// Attributes modify how a recipe is echoed, reported and run.
type Attributes struct {
	Quiet            bool
	NoExitMessage    bool
	Private          bool
	WorkingDirectory string
}

// Line is one body line: literal fragments interleaved with interpolations.
type Line struct {
	Parts []Expression
	// Number is the 1-based line in the recipe file, 0 when unknown.
	Number int
}

// Prefix returns the leading literal text of the line.
func (l Line) Prefix() string {
	if len(l.Parts) == 0 {
		return ""
	}
	if lit, ok := l.Parts[0].(Literal); ok {
		return lit.Text
	}
	return ""
}

// IsShebang reports whether the line starts with an interpreter directive.
func (l Line) IsShebang() bool {
	return strings.HasPrefix(l.Prefix(), "#!")
}

// IsContinuation reports whether the line ends with a backslash.
func (l Line) IsContinuation() bool {
	if len(l.Parts) == 0 {
		return false
	}
	lit, ok := l.Parts[len(l.Parts)-1].(Literal)
	return ok && strings.HasSuffix(lit.Text, `\`)
}

// IsEmpty reports whether the line has no parts.
func (l Line) IsEmpty() bool {
	return len(l.Parts) == 0
}

// Shebang is an interpreter directive parsed from a `#!` line.
type Shebang struct {
	Interpreter string
	Argument    string
}

// ParseShebang splits a `#!interpreter [argument]` line at the first run of whitespace.
func ParseShebang(line string) (*Shebang, bool) {
	rest, ok := strings.CutPrefix(line, "#!")
	if !ok {
		return nil, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, false
	}
	interpreter, argument := rest, ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		interpreter, argument = rest[:i], rest[i+1:]
	}
	return &Shebang{
		Interpreter: interpreter,
		Argument:    strings.TrimSpace(argument),
	}, true
}

// String renders the directive without the leading `#!`.
func (s *Shebang) String() string {
	if s.Argument == "" {
		return s.Interpreter
	}
	return s.Interpreter + " " + s.Argument
}

// Recipe is a named unit of work.
type Recipe struct {
	Name         InternedString
	Doc          string
	Parameters   []Parameter
	Dependencies []Dependency
	Body         []Line
	Attributes   Attributes
	// Line is the 1-based line of the recipe's declaration.
	Line int
}

// IsScript reports whether the body runs as a single script through an interpreter.
func (r *Recipe) IsScript() bool {
	return len(r.Body) > 0 && r.Body[0].IsShebang()
}

// MinArguments is the number of parameters a caller must supply.
func (r *Recipe) MinArguments() int {
	n := 0
	for _, p := range r.Parameters {
		if p.IsRequired() {
			n++
		}
	}
	return n
}

// MaxArguments is the number of parameters a caller may supply, or -1 when unbounded.
func (r *Recipe) MaxArguments() int {
	if n := len(r.Parameters); n > 0 && r.Parameters[n-1].IsVariadic() {
		return -1
	}
	return len(r.Parameters)
}

// Signature renders the recipe name followed by its parameters.
func (r *Recipe) Signature() string {
	parts := make([]string, 0, len(r.Parameters)+1)
	parts = append(parts, r.Name.String())
	for _, p := range r.Parameters {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// Assignment is a global variable definition.
type Assignment struct {
	Name   string
	Value  Expression
	Export bool
	Line   int
}
