package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.trai.ch/jot/internal/core/domain"
)

// source is a recipe file kept around to attach source lines to tokens.
type source struct {
	path  string
	lines []string
}

func newSource(path string, data []byte) *source {
	return &source{path: path, lines: strings.Split(string(data), "\n")}
}

func (s *source) token(line, column int, lexeme string) domain.Token {
	tok := domain.Token{Path: s.path, Line: line, Column: column, Lexeme: lexeme}
	if line >= 1 && line <= len(s.lines) {
		tok.Source = strings.TrimRight(s.lines[line-1], "\r")
	}
	return tok
}

// column returns the 1-based column where text starts on line, or fallback
// when the text cannot be found verbatim (quoted scalars with escapes).
func (s *source) column(line int, text string, fallback int) int {
	if line < 1 || line > len(s.lines) || text == "" {
		return fallback
	}
	first, _, _ := strings.Cut(text, "\n")
	if i := strings.Index(s.lines[line-1], first); i >= 0 {
		return utf8.RuneCountInString(s.lines[line-1][:i]) + 1
	}
	return fallback
}

func (s *source) errorf(line, column int, lexeme, format string, args ...any) error {
	return &domain.CompileError{
		Message: fmt.Sprintf(format, args...),
		Token:   s.token(line, column, lexeme),
	}
}

// scanner walks expression text while tracking the source position.
type scanner struct {
	src  *source
	text string
	pos  int
	line int
	col  int
}

func newScanner(src *source, text string, line, col int) *scanner {
	return &scanner{src: src, text: text, line: line, col: col}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.text)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.pos:])
	return r
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.text[s.pos:], prefix)
}

func (s *scanner) next() rune {
	r, size := utf8.DecodeRuneInString(s.text[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) advance(n int) {
	end := s.pos + n
	for s.pos < end {
		s.next()
	}
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.next()
	}
}

func (s *scanner) errorf(lexeme, format string, args ...any) error {
	return s.src.errorf(s.line, s.col, lexeme, format, args...)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || r == '-' || unicode.IsDigit(r)
}

// parseExpression parses a whole expression and requires the input to be consumed.
func parseExpression(src *source, text string, line, col int) (domain.Expression, error) {
	s := newScanner(src, text, line, col)
	expr, err := s.expression()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, s.errorf(string(s.peek()), "Expected end of expression but found `%c`", s.peek())
	}
	return expr, nil
}

// expression := value ('+' value)*
func (s *scanner) expression() (domain.Expression, error) {
	first, err := s.value()
	if err != nil {
		return nil, err
	}
	parts := []domain.Expression{first}
	for {
		s.skipSpace()
		if s.peek() != '+' {
			break
		}
		s.next()
		part, err := s.value()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return first, nil
	}
	return domain.Concatenation{Parts: parts}, nil
}

// value := string | backtick | identifier | call | '(' expression ')'
func (s *scanner) value() (domain.Expression, error) {
	s.skipSpace()
	if s.eof() {
		return nil, s.errorf("", "Expected expression but found end of text")
	}

	switch r := s.peek(); {
	case r == '\'' || r == '"':
		text, err := s.quoted()
		if err != nil {
			return nil, err
		}
		return domain.Literal{Text: text}, nil
	case r == '`':
		return s.backtick()
	case r == '(':
		s.next()
		expr, err := s.expression()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.peek() != ')' {
			return nil, s.errorf(string(s.peek()), "Expected `)` to close group")
		}
		s.next()
		return expr, nil
	case isIdentStart(r):
		return s.identifier()
	default:
		return nil, s.errorf(string(r), "Unexpected character `%c` in expression", r)
	}
}

func (s *scanner) identifier() (domain.Expression, error) {
	line, col, start := s.line, s.col, s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.next()
	}
	name := s.text[start:s.pos]
	tok := s.src.token(line, col, name)

	if s.peek() != '(' {
		return domain.Variable{Name: name, Token: tok}, nil
	}
	s.next()

	var args []domain.Expression
	for {
		s.skipSpace()
		if s.peek() == ')' {
			s.next()
			break
		}
		arg, err := s.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.next()
		case ')':
		default:
			return nil, s.errorf(string(s.peek()), "Expected `,` or `)` in call to `%s`", name)
		}
	}
	return domain.Call{Name: name, Arguments: args, Token: tok}, nil
}

func (s *scanner) backtick() (domain.Expression, error) {
	line, col := s.line, s.col
	s.next()
	start := s.pos
	for !s.eof() && s.peek() != '`' {
		s.next()
	}
	if s.eof() {
		return nil, s.src.errorf(line, col, "`", "Unterminated backtick")
	}
	command := s.text[start:s.pos]
	s.next()
	return domain.Backtick{
		Command: domain.Literal{Text: command},
		Token:   s.src.token(line, col, "`"+command+"`"),
	}, nil
}

// quoted reads a string literal. Single quotes are raw; double quotes accept escapes.
func (s *scanner) quoted() (string, error) {
	line, col := s.line, s.col
	quote := s.next()

	var b strings.Builder
	for {
		if s.eof() {
			return "", s.src.errorf(line, col, string(quote), "Unterminated string")
		}
		r := s.next()
		if r == quote {
			return b.String(), nil
		}
		if r != '\\' || quote == '\'' {
			b.WriteRune(r)
			continue
		}
		if s.eof() {
			return "", s.src.errorf(line, col, string(quote), "Unterminated string")
		}
		switch esc := s.next(); esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"':
			b.WriteRune(esc)
		case '\n':
			// line continuation
		default:
			return "", s.errorf(`\`+string(esc), "`\\%c` is not a valid escape sequence", esc)
		}
	}
}
