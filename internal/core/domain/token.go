package domain

// Token is an owned snapshot of a source position.
// Errors carry tokens so they can be rendered after the recipe file is released.
type Token struct {
	Path   string
	Line   int // 1-based
	Column int // 1-based
	Lexeme string
	// Source is the full text of the line the token sits on.
	Source string
}

// IsZero reports whether the token has no position information.
func (t Token) IsZero() bool {
	return t.Line == 0 && t.Lexeme == ""
}

// Located is implemented by errors that point at a place in the recipe file.
type Located interface {
	Location() Token
}
