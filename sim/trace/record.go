// Package trace provides routing and item-lifecycle trace recording.
// This package has no dependencies on sim/: it stores pure data types.
package trace

// RoutingRecord captures a single router commit: which item moved from which
// stage to which stage, and which list positions the balancers picked.
type RoutingRecord struct {
	Router     string
	ItemID     string
	Clock      float64
	From       string
	To         string
	ProducerAt int // index in the producer list of a balancer; 0 for a plain producer
	ConsumerAt int // index in the consumer list of a fan-out or balancer; 0 for a plain consumer
}

// ItemRecord captures an item entering or leaving the network.
type ItemRecord struct {
	ItemID string
	Event  string // "created" or "departed"
	Stage  string
	Clock  float64
}
