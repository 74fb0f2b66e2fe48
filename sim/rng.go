package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	SubsystemArrival         = "arrival"
	SubsystemRequestTransit  = "request_transit"
	SubsystemResponseTransit = "response_transit"
)

// SubsystemServer returns the subsystem name for server N.
// Each server draws service times from its own stream, so adding a server
// never perturbs the arrival stream.
func SubsystemServer(id int) string {
	return fmt.Sprintf("server_%d", id)
}

// SubsystemStage returns the subsystem name for a stage of a declarative graph.
func SubsystemStage(name string) string {
	return "stage_" + name
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random sources per subsystem.
//
// Derivation formula: PCG(masterSeed, fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.PCG
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.PCG),
	}
}

// ForSubsystem returns a deterministically-seeded source for the named subsystem.
// The same subsystem name always returns the same source (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) rand.Source {
	if src, ok := p.subsystems[name]; ok {
		return src
	}
	src := rand.NewPCG(uint64(p.key), fnv1a64(name))
	p.subsystems[name] = src
	return src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
