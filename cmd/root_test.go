package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/distribution"
	"github.com/inference-sim/tiox/sim/topology"
)

func constantConfig() NetworkConfig {
	cfg := DefaultNetworkConfig()
	cfg.Horizon = 10.5
	cfg.Step = 0.5
	cfg.Servers = 1
	cfg.Arrival = distribution.MeanCV(1, 0)
	cfg.RequestTransit = distribution.MeanCV(0, 0)
	cfg.Service = distribution.MeanCV(1, 0)
	cfg.ResponseTransit = distribution.MeanCV(0, 0)
	return cfg
}

func TestRunSimulation_ReachesHorizon(t *testing.T) {
	// GIVEN a constant single-server farm
	cfg := constantConfig()

	// WHEN run to 10.5 in half steps
	s, err := runSimulation(cfg)
	require.NoError(t, err)

	// THEN the clock stops exactly at the horizon
	assert.Equal(t, 10.5, s.Clock())
	assert.Equal(t, 10, s.Metrics.ItemsCreated)
	assert.Equal(t, 9, s.Metrics.ItemsDeparted)
}

func TestRunSimulation_HorizonNotMultipleOfStep(t *testing.T) {
	cfg := constantConfig()
	cfg.Step = 4
	s, err := runSimulation(cfg)
	require.NoError(t, err)
	assert.Equal(t, 10.5, s.Clock())
}

func TestRunSimulation_GraphCapabilityError(t *testing.T) {
	// GIVEN a graph pushing a source straight into a bounded server
	cfg := DefaultNetworkConfig()
	delay := distribution.MeanCV(1, 0)
	cfg.Graph = &topology.GraphSpec{Stages: []topology.StageSpec{
		{Name: "src", Kind: topology.StageSource, Delay: &delay, Next: "srv"},
		{Name: "srv", Kind: topology.StageServer, Delay: &delay, Next: "sink"},
		{Name: "sink", Kind: topology.StageSink},
	}}

	_, err := runSimulation(cfg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrAbstractCapability))
}

func TestGuard(t *testing.T) {
	// contract panics become errors
	err := guard(func() {
		s := sim.NewSimulation()
		s.Advance(2)
		s.Advance(1)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrInvariantViolation))

	// anything else keeps propagating
	assert.Panics(t, func() {
		_ = guard(func() { panic("boom") })
	})
	assert.NoError(t, guard(func() {}))
}

func TestReport_TextWithTraceSummary(t *testing.T) {
	cfg := constantConfig()
	cfg.TraceLevel = "items"
	s, err := runSimulation(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report(&buf, s, false, true))

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "=== Trace Summary ===")
	assert.Contains(t, out, "Routing Decisions    : 10")
	assert.Contains(t, out, "10 created, 9 departed")
	assert.Contains(t, out, "server_0")
}

func TestReport_JSON(t *testing.T) {
	s, err := runSimulation(constantConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report(&buf, s, true, true))
	assert.Contains(t, buf.String(), `"items_departed": 9`)
	assert.NotContains(t, buf.String(), "TotalDecisions", "no trace was collected")
}

func TestResolveConfig_FlagsOverrideOnlyWhenSet(t *testing.T) {
	// GIVEN a config file and a command where only --servers is set
	dir := t.TempDir()
	path := filepath.Join(dir, "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers: 5\nhorizon: 7\nseed: 9\n"), 0o644))

	cmd := &cobra.Command{}
	addNetworkFlags(cmd)
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("servers", "3"))
	t.Cleanup(func() { configPath = "" })

	// WHEN resolving
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	// THEN the explicit flag wins and the file values survive the flag defaults
	assert.Equal(t, 3, cfg.Servers)
	assert.Equal(t, 7.0, cfg.Horizon)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestResolveConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: -3\n"), 0o644))

	cmd := &cobra.Command{}
	addNetworkFlags(cmd)
	require.NoError(t, cmd.Flags().Set("config", path))
	t.Cleanup(func() { configPath = "" })

	_, err := resolveConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon")
}
