package config

import (
	"strings"

	"go.trai.ch/jot/internal/core/domain"
)

const (
	openDelim    = "{{"
	closeDelim   = "}}"
	escapedDelim = "{{{{"
)

// parseTemplate splits text into literal fragments and `{{ expression }}` interpolations.
// `{{{{` produces a literal `{{`.
func parseTemplate(src *source, text string, line, col int) ([]domain.Expression, error) {
	s := newScanner(src, text, line, col)
	var (
		parts   []domain.Expression
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			parts = append(parts, domain.Literal{Text: literal.String()})
			literal.Reset()
		}
	}

	for !s.eof() {
		switch {
		case s.hasPrefix(escapedDelim):
			s.advance(len(escapedDelim))
			literal.WriteString(openDelim)
		case s.hasPrefix(openDelim):
			line, col := s.line, s.col
			s.advance(len(openDelim))
			expr, err := s.expression()
			if err != nil {
				return nil, err
			}
			s.skipSpace()
			if !s.hasPrefix(closeDelim) {
				return nil, src.errorf(line, col, openDelim, "Unterminated interpolation")
			}
			s.advance(len(closeDelim))
			flush()
			parts = append(parts, expr)
		default:
			literal.WriteRune(s.next())
		}
	}
	flush()
	return parts, nil
}

// parseValue parses a template into a single expression.
func parseValue(src *source, text string, line, col int) (domain.Expression, error) {
	parts, err := parseTemplate(src, text, line, col)
	if err != nil {
		return nil, err
	}
	switch len(parts) {
	case 0:
		return domain.Literal{}, nil
	case 1:
		return parts[0], nil
	default:
		return domain.Concatenation{Parts: parts}, nil
	}
}
