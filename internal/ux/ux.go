// Package ux formats command output for the terminal.
//
// Styling is applied only when the output is a terminal; otherwise lines are
// plain text so reports can be piped and grepped.
package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/born-ml/gradspeed/internal/report"
)

// Palette.
var (
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#6C7A89")
	ColorAccent  = lipgloss.Color("#20B9B4")
)

// Styles holds the styles used by Printer.
var Styles = struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Rate    lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Bold:    lipgloss.NewStyle().Bold(true),
	Rate:    lipgloss.NewStyle().Foreground(ColorAccent).Bold(true),
}

// Icons.
const (
	IconSuccess = "✓"
	IconError   = "✗"
)

// Printer writes styled lines.
type Printer struct {
	w     io.Writer
	color bool
}

// New creates a printer for w, styling output only if w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: IsTerminal(w)}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Measured prints one recorded measurement.
func (p *Printer) Measured(r report.Row) {
	setup := ""
	if r.TimeSetup {
		setup = p.render(Styles.Muted, " (with setup)")
	}
	fmt.Fprintf(p.w, "%s %s %s size=%d%s %s\n",
		p.render(Styles.Success, IconSuccess),
		p.render(Styles.Bold, r.Backend),
		r.Algorithm,
		r.Size,
		setup,
		p.render(Styles.Rate, fmt.Sprintf("%.6g/s", r.Rate)),
	)
}

// Failed prints a failure line.
func (p *Printer) Failed(err error) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(Styles.Error, IconError), err)
}

// Summary prints the outcome of a batch.
func (p *Printer) Summary(ok, failed int, file string) {
	status := p.render(Styles.Success, fmt.Sprintf("%d recorded", ok))
	if failed > 0 {
		status += ", " + p.render(Styles.Error, fmt.Sprintf("%d failed", failed))
	}
	fmt.Fprintf(p.w, "%s %s\n", status, p.render(Styles.Muted, "→ "+file))
}

// Line prints text without styling.
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.w, text)
}
