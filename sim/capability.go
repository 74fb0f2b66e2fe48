package sim

import "math"

// Distribution supplies non-negative delay samples.
type Distribution interface {
	Sample() float64
}

// Stage is any named network node.
type Stage interface {
	Name() string
	Kind() Kind
}

// Listener is notified when a stage it subscribed to may have work for it:
// a producer became non-empty or a consumer freed capacity.
type Listener interface {
	Poke()
}

// listeners is an explicit subscriber list; subscribing never replaces an
// earlier listener.
type listeners []Listener

func (ls *listeners) add(l Listener) {
	if l == nil {
		return
	}
	*ls = append(*ls, l)
}

func (ls listeners) notify() {
	for _, l := range ls {
		l.Poke()
	}
}

// Offer is the reservation returned by PeekProduce and required by Produce.
// Routers wrap the offer of the producer they picked in their own.
type Offer struct {
	Item  *Item
	from  Producer
	slot  int
	inner *Offer
}

// Source names the stage that actually holds the offered item.
func (o Offer) Source() string {
	if o.inner != nil {
		return o.inner.Source()
	}
	if o.from == nil {
		return ""
	}
	return o.from.Name()
}

// Claim is the reservation returned by PeekConsume and required by Consume.
type Claim struct {
	Item  *Item
	to    Consumer
	slot  int
	inner *Claim
}

// Target names the stage that will actually receive the claimed item.
func (c Claim) Target() string {
	if c.inner != nil {
		return c.inner.Target()
	}
	if c.to == nil {
		return ""
	}
	return c.to.Name()
}

// Producer hands items off through the two-phase peek/commit handshake.
type Producer interface {
	Stage
	// PeekProduce reports the next item without removing it.
	PeekProduce() (Offer, bool)
	// Produce removes the offered item. The offer must still be current.
	Produce(o Offer)
	// OnAvailable subscribes l to "became non-empty" notifications.
	OnAvailable(l Listener)
}

// Consumer accepts items through the two-phase peek/commit handshake.
type Consumer interface {
	Stage
	// PeekConsume reports whether it could be accepted now, reserving nothing.
	PeekConsume(it *Item) (Claim, bool)
	// Consume accepts the claimed item. The claim must still be valid.
	Consume(c Claim)
	// OnFreed subscribes l to "freed capacity" notifications.
	OnFreed(l Listener)
}

// Acceptor is an unbounded stage that takes any item unconditionally.
// Sources, Links and Servers push into Acceptors without a handshake, which is
// only sound because an Acceptor can never refuse.
type Acceptor interface {
	Stage
	Accept(it *Item)
}

// AsProducer returns the Producer capability of s.
func AsProducer(s Stage) (Producer, error) {
	if p, ok := s.(Producer); ok {
		return p, nil
	}
	return nil, abstractCapability(s.Name(), "produce")
}

// AsConsumer returns the Consumer capability of s.
func AsConsumer(s Stage) (Consumer, error) {
	if c, ok := s.(Consumer); ok {
		return c, nil
	}
	return nil, abstractCapability(s.Name(), "consume")
}

// AsAcceptor returns the unconditional-accept capability of s.
func AsAcceptor(s Stage) (Acceptor, error) {
	if a, ok := s.(Acceptor); ok {
		return a, nil
	}
	return nil, abstractCapability(s.Name(), "accept")
}

// sampleDelay draws from d and rejects values the clock cannot use.
func sampleDelay(stage string, d Distribution) float64 {
	v := d.Sample()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		violation(stage, "distribution sampled %v", v)
	}
	return v
}
