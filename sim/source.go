package sim

import "github.com/sirupsen/logrus"

// Source creates items at sampled inter-arrival times and pushes each one
// into its successor without a handshake.
type Source struct {
	Actor
	interarrival Distribution
	next         Acceptor
}

// NewSource registers a source whose first arrival is one sample from now.
func NewSource(s *Simulation, name string, interarrival Distribution) *Source {
	src := &Source{interarrival: interarrival}
	s.register(&src.Actor, KindSource, name, src)
	src.SetWake(s.clock + sampleDelay(name, interarrival))
	return src
}

// Connect sets the stage that receives every new item.
func (src *Source) Connect(next Acceptor) {
	src.next = next
}

func (src *Source) Elapse(now float64, wake bool) {
	if !wake {
		return
	}
	if src.next == nil {
		violation(src.name, "no successor connected")
	}
	src.SetWake(now + sampleDelay(src.name, src.interarrival))

	it := newItem(src.sim, now)
	src.sim.Metrics.recordCreated(it)
	src.sim.recordItem(it, "created", src.name, now)
	logrus.Debugf("[t=%.4f] %s emits %s", now, src.name, it.name)
	src.next.Accept(it)
}
