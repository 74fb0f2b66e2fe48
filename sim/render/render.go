// Package render paints a topology.Layout as a terminal frame. The kernel
// never calls it; hosts such as the watch command do, between Advance calls.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/topology"
)

// Palette holds the styles of a frame. It is passed in explicitly so that
// nothing in the simulator depends on global paint state.
type Palette struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Item   lipgloss.Style
	Lane   lipgloss.Style
	Busy   lipgloss.Style
	Idle   lipgloss.Style
	Queue  lipgloss.Style
	Muted  lipgloss.Style
}

func DefaultPalette() Palette {
	return Palette{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		Item:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F1C40F")),
		Lane:   lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
		Busy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
		Idle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")),
		Queue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3498DB")),
		Muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Options controls frame geometry.
type Options struct {
	// Width is the number of cells of each lane.
	Width   int
	Palette Palette
	// Status is an optional footer line, e.g. play/pause state.
	Status string
}

const (
	itemGlyph  = "●"
	laneGlyph  = "·"
	queueGlyph = "■"
	fullGlyph  = "█"
	emptyGlyph = "░"
)

// Frame renders one row per stage under a header with the clock and counters.
func Frame(l topology.Layout, opts Options) string {
	width := max(opts.Width, 4)
	p := opts.Palette

	labelWidth := 0
	for _, r := range l.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Name))
	}
	label := p.Label.Width(labelWidth + 2)

	lines := []string{
		p.Header.Render(fmt.Sprintf("t=%.2f", l.Clock)) + "  " +
			p.Muted.Render(fmt.Sprintf("created %d  departed %d", l.Created, l.Departed)),
	}
	for _, r := range l.Rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r.Name), row(r, width, p)))
	}
	if opts.Status != "" {
		lines = append(lines, p.Muted.Render(opts.Status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(r topology.Row, width int, p Palette) string {
	switch r.Kind {
	case sim.KindLink:
		return lane(r.Progress, width, p) + " " + p.Muted.Render(fmt.Sprintf("%d in transit", r.Count))
	case sim.KindBuffer:
		shown := min(r.Count, width)
		bar := p.Queue.Render(strings.Repeat(queueGlyph, shown))
		if r.Count > shown {
			bar += p.Queue.Render(fmt.Sprintf("+%d", r.Count-shown))
		}
		return bar + " " + p.Muted.Render(fmt.Sprintf("depth %d", r.Count))
	case sim.KindServer:
		if !r.Busy || len(r.Progress) == 0 {
			return p.Idle.Render(strings.Repeat(emptyGlyph, width)) + " " + p.Idle.Render("idle")
		}
		filled := int(r.Progress[0] * float64(width))
		filled = min(max(filled, 0), width)
		return p.Busy.Render(strings.Repeat(fullGlyph, filled)) +
			p.Lane.Render(strings.Repeat(emptyGlyph, width-filled)) + " " + p.Busy.Render("busy")
	case sim.KindSink:
		return p.Muted.Render(fmt.Sprintf("departed %d", r.Count))
	case sim.KindSource:
		return p.Item.Render(itemGlyph)
	}
	return ""
}

// lane places one glyph per item at its progress along the link.
func lane(progress []float64, width int, p Palette) string {
	cells := make([]bool, width)
	for _, f := range progress {
		i := int(f * float64(width-1))
		cells[min(max(i, 0), width-1)] = true
	}
	var sb strings.Builder
	for _, occupied := range cells {
		if occupied {
			sb.WriteString(p.Item.Render(itemGlyph))
		} else {
			sb.WriteString(p.Lane.Render(laneGlyph))
		}
	}
	return sb.String()
}
