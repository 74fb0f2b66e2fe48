package sim

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/tiox/sim/internal/testutil"
)

func TestSummarize_EmptyInput_ReturnsZero(t *testing.T) {
	assert.Equal(t, SampleSummary{}, Summarize(nil))
}

func TestSummarize_SingleElement(t *testing.T) {
	got := Summarize([]float64{4})
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 4.0, got.Mean)
	assert.Equal(t, 0.0, got.StdDev)
	assert.Equal(t, 4.0, got.P50)
	assert.Equal(t, 4.0, got.P99)
	assert.Equal(t, 4.0, got.Max)
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	data := []float64{5, 1, 3, 2, 4}
	got := Summarize(data)

	assert.Equal(t, []float64{5, 1, 3, 2, 4}, data)
	assert.Equal(t, 3.0, got.Mean)
	assert.Equal(t, 3.0, got.P50)
	assert.Equal(t, 5.0, got.Max)
	testutil.AssertFloat64Equal(t, "stddev", 1.5811388300841898, got.StdDev, 1e-12)
}

func TestMetrics_Report(t *testing.T) {
	// GIVEN a one-server farm that ran to t=11
	s := NewSimulation()
	newTestFarm(s, 1, testutil.Const(1), testutil.Const(0), constService(0.5))
	s.Advance(11)

	// WHEN building the report
	r := s.Metrics.Report(s.Clock())

	// THEN counts, throughput and utilization follow from the constant delays
	assert.Equal(t, 10, r.ItemsCreated)
	assert.Equal(t, 10, r.ItemsDeparted)
	assert.Equal(t, 0, r.ItemsInFlight)
	testutil.AssertFloat64Equal(t, "throughput", 10.0/11, r.Throughput, 1e-12)
	assert.Equal(t, 0.5, r.Sojourn.Mean)
	testutil.AssertFloat64Equal(t, "utilization", 5.0/11, r.Utilization["server_0"], 1e-12)
}

func TestMetrics_ZeroClock(t *testing.T) {
	m := NewMetrics()
	r := m.Report(0)
	assert.Equal(t, 0.0, r.Throughput)
	assert.Empty(t, r.Utilization)
}

func TestMetrics_PrintAndJSON(t *testing.T) {
	s := NewSimulation()
	newTestFarm(s, 2, testutil.Const(1), testutil.Const(0.25), constService(1.5))
	s.Advance(20)

	var text bytes.Buffer
	s.Metrics.Print(&text, s.Clock())
	assert.Contains(t, text.String(), "=== Simulation Metrics ===")
	assert.Contains(t, text.String(), "Utilization server_0")
	assert.Contains(t, text.String(), "Utilization server_1")

	var raw bytes.Buffer
	require.NoError(t, s.Metrics.WriteJSON(&raw, s.Clock()))
	var decoded Report
	require.NoError(t, json.Unmarshal(raw.Bytes(), &decoded))
	assert.Equal(t, s.Metrics.ItemsDeparted, decoded.ItemsDeparted)
	assert.Equal(t, 20.0, decoded.Clock)
}
