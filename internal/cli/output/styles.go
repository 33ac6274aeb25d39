package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for human-facing output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds styles bound to w. When styled is false the Ascii
// profile is forced, so every style renders its input unchanged. On a real
// terminal the profile follows the environment (NO_COLOR, TERM).
func NewStyles(w io.Writer, styled bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	switch {
	case !styled:
		lr.SetColorProfile(termenv.Ascii)
	case isTerminal(w):
		lr.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	default:
		lr.SetColorProfile(termenv.ANSI)
	}

	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("6")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// ErrorPrefix returns "Error:" styled for w when w is a terminal.
func ErrorPrefix(w io.Writer) string {
	return NewStyles(w, isTerminal(w)).Error.Render("Error:")
}
