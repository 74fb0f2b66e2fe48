package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/topology"
)

func sampleLayout() topology.Layout {
	return topology.Layout{
		Clock:    3.25,
		Created:  3,
		Departed: 1,
		Rows: []topology.Row{
			{Name: "source", Kind: sim.KindSource},
			{Name: "request-link", Kind: sim.KindLink, Count: 2, Progress: []float64{0, 1}},
			{Name: "buffer", Kind: sim.KindBuffer, Count: 12},
			{Name: "server_0", Kind: sim.KindServer, Busy: true, Progress: []float64{0.5}},
			{Name: "server_1", Kind: sim.KindServer},
			{Name: "sink", Kind: sim.KindSink, Count: 1},
		},
	}
}

func TestFrame_OneLinePerRowPlusHeader(t *testing.T) {
	out := Frame(sampleLayout(), Options{Width: 10, Palette: DefaultPalette(), Status: "paused"})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "t=3.25")
	assert.Contains(t, lines[7], "paused")
}

func TestFrame_StageGlyphs(t *testing.T) {
	out := Frame(sampleLayout(), Options{Width: 10, Palette: DefaultPalette()})
	lines := strings.Split(out, "\n")

	// items at both ends of the link
	assert.Equal(t, 2, strings.Count(lines[2], itemGlyph))
	// the buffer shows width glyphs and the overflow count
	assert.Equal(t, 10, strings.Count(lines[3], queueGlyph))
	assert.Contains(t, lines[3], "+2")
	assert.Contains(t, lines[3], "depth 12")
	// half-served item
	assert.Equal(t, 5, strings.Count(lines[4], fullGlyph))
	assert.Contains(t, lines[4], "busy")
	assert.Contains(t, lines[5], "idle")
	assert.Contains(t, lines[6], "departed 1")
}

func TestFrame_AlignedLabels(t *testing.T) {
	out := Frame(sampleLayout(), Options{Width: 8, Palette: DefaultPalette()})
	lines := strings.Split(out, "\n")
	// every server lane has the same visible width
	assert.Equal(t, lipgloss.Width(lines[4]), lipgloss.Width(lines[5]))
}

func TestFrame_FromSnapshot(t *testing.T) {
	s := sim.NewSimulation()
	f, err := topology.BuildFarm(s, topology.DefaultFarmConfig(), sim.NewPartitionedRNG(sim.NewSimulationKey(3)))
	require.NoError(t, err)
	s.Advance(5)

	out := Frame(topology.Snapshot(s, f.Stages()), Options{Width: 20, Palette: DefaultPalette()})
	assert.Contains(t, out, "t=5.00")
	assert.Equal(t, len(f.Stages())+1, len(strings.Split(out, "\n")))
}
