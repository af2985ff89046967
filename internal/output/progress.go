package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"splitstep/internal/sims/langevin"
)

// Progress prints a human-readable line per record.
type Progress struct {
	w      io.Writer
	prefix string

	label lipgloss.Style
	value lipgloss.Style
	wall  lipgloss.Style
}

// NewProgress writes to w. prefix, when set, tags each line (sweeps use the
// growth rate).
func NewProgress(w io.Writer, prefix string) *Progress {
	r := lipgloss.NewRenderer(w)
	return &Progress{
		w:      w,
		prefix: prefix,
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		value:  r.NewStyle().Foreground(lipgloss.Color("#E5E5E5")),
		wall:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Emit prints "[t=…] density (wall)".
func (p *Progress) Emit(r langevin.Record) error {
	head := fmt.Sprintf("[t=%g]", r.Time)
	if p.prefix != "" {
		head = p.prefix + " " + head
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s\n",
		p.label.Render(head),
		p.value.Render(fmt.Sprintf("%12.11f", r.Density)),
		p.wall.Render("("+r.Wall.Round(time.Millisecond).String()+")"))
	return err
}
