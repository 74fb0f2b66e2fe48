package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/tiox/sim/trace"
)

// Driver binds one producer side to one consumer side. It never polls: the
// producer's "became non-empty" and the consumer's "freed capacity"
// notifications each wake it at the current instant, and it keeps rescheduling
// itself while transfers succeed.
type Driver struct {
	Actor
	producer Producer
	consumer Consumer
	moved    int
}

// NewDriver registers a driver and subscribes it to both sides. The first
// evaluation happens at the current instant in case work is already waiting.
func NewDriver(s *Simulation, name string, producer Producer, consumer Consumer) *Driver {
	d := &Driver{producer: producer, consumer: consumer}
	s.register(&d.Actor, KindRouter, name, d)
	producer.OnAvailable(d)
	consumer.OnFreed(d)
	d.Poke()
	return d
}

// Moved returns the number of items this driver has transferred.
func (d *Driver) Moved() int {
	return d.moved
}

// Poke schedules an immediate re-evaluation.
func (d *Driver) Poke() {
	d.Schedule(d.sim.clock, PriorityDefault)
}

func (d *Driver) Elapse(now float64, wake bool) {
	if !wake {
		return
	}
	offer, ok := d.producer.PeekProduce()
	if !ok {
		return
	}
	claim, ok := d.consumer.PeekConsume(offer.Item)
	if !ok {
		return
	}
	d.producer.Produce(offer)
	d.consumer.Consume(claim)
	d.moved++
	logrus.Debugf("[t=%.4f] %s moves %s: %s -> %s", now, d.name, offer.Item.name, offer.Source(), claim.Target())
	d.sim.recordRouting(d.name, offer, claim, now)

	// there may be more work
	d.Poke()
}

func (s *Simulation) recordRouting(router string, o Offer, c Claim, now float64) {
	if s.Trace == nil || !s.Trace.Config.Level.Includes(trace.TraceLevelDecisions) {
		return
	}
	s.Trace.RecordRouting(trace.RoutingRecord{
		Router:     router,
		ItemID:     o.Item.name,
		Clock:      now,
		From:       o.Source(),
		To:         c.Target(),
		ProducerAt: o.slot,
		ConsumerAt: c.slot,
	})
}

func (s *Simulation) recordItem(it *Item, event string, stage string, now float64) {
	if s.Trace == nil || !s.Trace.Config.Level.Includes(trace.TraceLevelItems) {
		return
	}
	s.Trace.RecordItem(trace.ItemRecord{
		ItemID: it.name,
		Event:  event,
		Stage:  stage,
		Clock:  now,
	})
}
