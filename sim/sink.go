package sim

import "github.com/sirupsen/logrus"

// Sink terminates items: accepting one cancels it.
type Sink struct {
	Actor
	departed int
}

func NewSink(s *Simulation, name string) *Sink {
	k := &Sink{}
	s.register(&k.Actor, KindSink, name, k)
	return k
}

// Departed returns the number of items this sink has terminated.
func (k *Sink) Departed() int {
	return k.departed
}

func (k *Sink) Accept(it *Item) {
	now := k.sim.clock
	if it.owner != nil {
		violation(k.name, "%s still owned by %s", it.name, it.owner.Name())
	}
	k.departed++
	k.sim.Metrics.recordDeparture(it, now)
	k.sim.recordItem(it, "departed", k.name, now)
	logrus.Debugf("[t=%.4f] %s departs %s (sojourn %.4f)", now, k.name, it.name, now-it.Created)
	it.Cancel()
}

func (k *Sink) PeekConsume(it *Item) (Claim, bool) {
	return Claim{Item: it, to: k}, true
}

func (k *Sink) Consume(c Claim) {
	if c.to != Consumer(k) {
		violation(k.name, "claim issued by %s", c.Target())
	}
	k.Accept(c.Item)
}

// OnFreed is a no-op: a Sink never refuses an item.
func (k *Sink) OnFreed(Listener) {}

func (k *Sink) Elapse(float64, bool) {}
