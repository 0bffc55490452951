package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/csheth/docscout/internal/render"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// printer writes status lines to the command's stderr so stdout carries only
// the answer.
type printer struct {
	w io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{w: cmd.ErrOrStderr()}
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p printer) failure(format string, args ...any) {
	fmt.Fprintln(p.w, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (p printer) notices(err error) {
	for _, n := range render.NoticesFor(err) {
		switch n.Tone {
		case render.ToneError:
			p.failure("%s", n.Text)
		case render.ToneWarning:
			fmt.Fprintln(p.w, warningStyle.Render("⚠ "+n.Text))
		case render.ToneSuccess:
			p.success("%s", n.Text)
		default:
			fmt.Fprintln(p.w, n.Text)
		}
	}
}
