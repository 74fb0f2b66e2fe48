package cmd

import (
	"testing"
)

// TestSeedOverride_DifferentSeeds_DifferentRuns verifies that a --seed
// override reaches every stochastic stage: different seeds produce different
// departure sequences.
func TestSeedOverride_DifferentSeeds_DifferentRuns(t *testing.T) {
	// GIVEN the default stochastic farm with two different seeds
	cfg1 := DefaultNetworkConfig()
	cfg2 := DefaultNetworkConfig()
	cfg1.Horizon, cfg2.Horizon = 30, 30
	cfg1.Seed = 100 // simulates Changed("seed") → cfg.Seed = 100
	cfg2.Seed = 200 // simulates Changed("seed") → cfg.Seed = 200

	// WHEN both are run
	s1, err := runSimulation(cfg1)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := runSimulation(cfg2)
	if err != nil {
		t.Fatal(err)
	}

	// THEN the departure sequences differ
	d1, d2 := s1.Metrics.DepartureTimes, s2.Metrics.DepartureTimes
	if len(d1) == 0 || len(d2) == 0 {
		t.Fatal("expected departures from both runs")
	}
	anyDifferent := len(d1) != len(d2)
	for i := 0; i < min(len(d1), len(d2)); i++ {
		if d1[i] != d2[i] {
			anyDifferent = true
			break
		}
	}
	if !anyDifferent {
		t.Error("different seeds produced identical departures")
	}
}

// TestSeedOverride_SameSeed_IdenticalRuns verifies run-to-run determinism.
func TestSeedOverride_SameSeed_IdenticalRuns(t *testing.T) {
	cfg := DefaultNetworkConfig()
	cfg.Horizon = 30
	cfg.TraceLevel = "decisions"

	s1, err := runSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := runSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(s1.Trace.Routings) != len(s2.Trace.Routings) {
		t.Fatalf("decision counts differ: %d vs %d", len(s1.Trace.Routings), len(s2.Trace.Routings))
	}
	for i := range s1.Trace.Routings {
		if s1.Trace.Routings[i] != s2.Trace.Routings[i] {
			t.Fatalf("decision %d differs: %+v vs %+v", i, s1.Trace.Routings[i], s2.Trace.Routings[i])
		}
	}
}
