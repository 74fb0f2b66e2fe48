// Package sim provides the discrete-event kernel of the queueing-network
// simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event_queue.go: the keyed min-heap of actors ordered by (wake, priority, insertion)
//   - actor.go: the schedulable record shared by stages, routers and items
//   - simulator.go: Advance, the firing loop and the tick pass
//
// # Network
//
// Items flow through stages:
//   - Source: emits items at sampled inter-arrival times
//   - Link: unbounded transit with a sampled per-item delay
//   - Buffer: unbounded FIFO
//   - Server: single-slot service with a sampled per-item delay
//   - Sink: terminates items
//
// Sources, Links and Servers push into their successor unconditionally, so
// that successor must be an Acceptor (an unbounded stage). Everything else
// moves through a Driver, which binds a Producer to a Consumer using the
// two-phase Peek/commit handshake and the Offer/Claim reservation tokens.
// FanOut and Balancer compose several producers or consumers behind one.
//
// # Determinism
//
// Random delays come from PartitionedRNG, one stream per subsystem, so two
// runs with the same seed and configuration produce identical event orders.
// Equal wake times are broken by priority class and then by scheduling order.
//
// Sub-packages:
//   - sim/distribution/: gamma delay distributions parameterized by mean or rate and CV
//   - sim/topology/: farm and declarative graph builders, render layout
//   - sim/trace/: routing and item lifecycle traces
//   - sim/render/: terminal frame rendering
package sim
