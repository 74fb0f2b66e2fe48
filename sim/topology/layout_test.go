package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/tiox/sim"
)

func TestSnapshot_Farm(t *testing.T) {
	// GIVEN arrivals every 1, transit 0.5 and service 2 on two servers
	s := sim.NewSimulation()
	f, err := BuildFarm(s, constantFarm(2, 1, 0.5, 2), newRNG())
	require.NoError(t, err)

	// WHEN advancing to 3.25
	s.Advance(3.25)
	l := Snapshot(s, f.Stages())

	// THEN item 3 is halfway through the request link and both servers are busy
	require.Len(t, l.Rows, 7)
	assert.Equal(t, 3.25, l.Clock)
	assert.Equal(t, 3, l.Created)

	link := l.Rows[1]
	assert.Equal(t, sim.KindLink, link.Kind)
	assert.Equal(t, 1, link.Count)
	require.Len(t, link.Progress, 1)
	assert.InDelta(t, 0.5, link.Progress[0], 1e-12)

	assert.Equal(t, 0, l.Rows[2].Count, "buffer")
	s0, s1 := l.Rows[3], l.Rows[4]
	assert.True(t, s0.Busy)
	assert.True(t, s1.Busy)
	// s0 started at 1.5, s1 at 2.5
	assert.InDelta(t, 0.875, s0.Progress[0], 1e-12)
	assert.InDelta(t, 0.375, s1.Progress[0], 1e-12)
	assert.Equal(t, 0, l.Rows[6].Count, "sink")
}
