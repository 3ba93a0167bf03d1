// Package render formats errors for the terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jot/internal/core/domain"
)

// Formatter implements ports.ErrorFormatter.
type Formatter struct {
	Color bool
}

// NewFormatter creates a new Formatter.
func NewFormatter(color bool) *Formatter {
	return &Formatter{Color: color}
}

type styles struct {
	label   lipgloss.Style
	message lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
}

func (f *Formatter) styles() styles {
	r := NewRenderer(io.Discard, f.Color)
	return styles{
		label:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		message: r.NewStyle().Bold(true),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		caret:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Format renders err as an `error:` line followed by any suggestion, usage and
// source excerpt the error carries.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	st := f.styles()

	var b strings.Builder
	b.WriteString(st.label.Render("error"))
	b.WriteString(st.message.Render(": " + err.Error()))

	var suggester domain.Suggester
	if errors.As(err, &suggester) {
		if s := suggester.Suggestion(); s != "" {
			fmt.Fprintf(&b, "\nDid you mean `%s`?", s)
		}
	}

	var mismatch *domain.ArgumentCountMismatchError
	if errors.As(err, &mismatch) {
		b.WriteString("\nusage:\n    ")
		b.WriteString(mismatch.Usage())
	}

	var located domain.Located
	if errors.As(err, &located) {
		if tok := located.Location(); !tok.IsZero() && tok.Source != "" {
			b.WriteByte('\n')
			b.WriteString(excerpt(tok, st))
		}
	}

	return b.String()
}

// excerpt draws the source line of tok with the lexeme underlined.
func excerpt(tok domain.Token, st styles) string {
	number := strconv.Itoa(tok.Line)
	pad := strings.Repeat(" ", len(number))
	bar := st.gutter.Render("│")

	column := max(tok.Column, 1)
	prefix := tok.Source
	if n := column - 1; n <= len(prefix) {
		prefix = prefix[:n]
	}
	width := max(utf8.RuneCountInString(tok.Lexeme), 1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", pad, st.gutter.Render("——▶"), tok.Path, tok.Line, column)
	fmt.Fprintf(&b, "%s %s\n", pad, bar)
	fmt.Fprintf(&b, "%s %s %s\n", st.gutter.Render(number), bar, tok.Source)
	fmt.Fprintf(&b, "%s %s %s%s", pad, bar,
		strings.Repeat(" ", utf8.RuneCountInString(prefix)), st.caret.Render(strings.Repeat("^", width)))
	return b.String()
}
