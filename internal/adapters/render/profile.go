package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the profile used when color is requested.
// NO_COLOR always wins.
func ColorProfile(color bool) termenv.Profile {
	if !color || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// NewRenderer creates a lipgloss renderer for w with a fixed profile, so styling
// does not depend on whether w is a terminal.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile(color))
	return r
}

// DetectColor reports whether w is a terminal that supports color.
func DetectColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.NewOutput(w).Profile != termenv.Ascii
}
