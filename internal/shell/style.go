package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 56

var (
	accent  = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#6B7280")
)

// styles is bound to the shell's output so colour is only emitted to terminals.
type styles struct {
	banner lipgloss.Style
	warn   lipgloss.Style
	dim    lipgloss.Style
	label  lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		banner: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Bold(true).
			Padding(0, 1).
			Width(bannerWidth),
		warn:  r.NewStyle().Foreground(warning),
		dim:   r.NewStyle().Foreground(muted),
		label: r.NewStyle().Bold(true),
	}
}
