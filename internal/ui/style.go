package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles colors status words when writing to a terminal and leaves them
// untouched otherwise.
type Styles struct {
	plain bool
	ok    lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
}

// NewStyles returns styles bound to out.
func NewStyles(out io.Writer) Styles {
	if !IsTerminal(out) {
		return Styles{plain: true}
	}
	r := lipgloss.NewRenderer(out)
	return Styles{
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
		bad:  r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// OK renders a success word.
func (s Styles) OK(v string) string { return s.render(s.ok, v) }

// Warn renders a warning word.
func (s Styles) Warn(v string) string { return s.render(s.warn, v) }

// Bad renders a failure word.
func (s Styles) Bad(v string) string { return s.render(s.bad, v) }

func (s Styles) render(st lipgloss.Style, v string) string {
	if s.plain {
		return v
	}
	return st.Render(v)
}

// IsTerminal reports whether out is a terminal.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
