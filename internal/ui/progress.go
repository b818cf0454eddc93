package ui

import (
	"fmt"
	"io"
)

// Progress reports sequential steps with a simple counter display.
type Progress struct {
	out       io.Writer
	styles    Styles
	total     int
	completed int
}

// NewProgress creates a progress tracker for n steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, styles: NewStyles(out), total: total}
}

// Done marks one step as completed and prints the current progress.
func (p *Progress) Done(label string) {
	p.completed++
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.styles.OK(fmt.Sprintf("[%d/%d]", p.completed, p.total)), label)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Completed returns the number of steps marked done.
func (p *Progress) Completed() int {
	return p.completed
}
