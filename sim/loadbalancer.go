package sim

// Balancers hold no items. They pick a candidate by strict left-to-right
// first fit: earlier entries win whenever several are eligible at once.

// relay re-exposes notifications from the stages behind a balancer.
type relay struct {
	out *listeners
}

func (r relay) Poke() {
	r.out.notify()
}

// FanOut matches items from one logical producer side to the first of several
// consumers that accepts them, e.g. one queue feeding N servers. It aggregates
// the consumers' "freed capacity" notifications into its own.
type FanOut struct {
	Actor
	consumers []Consumer
	freed     listeners
}

func NewFanOut(s *Simulation, name string, consumers []Consumer) *FanOut {
	f := &FanOut{consumers: consumers}
	s.register(&f.Actor, KindRouter, name, f)
	for _, c := range consumers {
		c.OnFreed(relay{out: &f.freed})
	}
	return f
}

// Consumers returns the candidate list in preference order.
func (f *FanOut) Consumers() []Consumer {
	return f.consumers
}

func (f *FanOut) PeekConsume(it *Item) (Claim, bool) {
	return claimFirst(f, f.consumers, it)
}

func (f *FanOut) Consume(c Claim) {
	commitClaim(f.name, f, f.consumers, c)
}

func (f *FanOut) OnFreed(l Listener) {
	f.freed.add(l)
}

func (f *FanOut) Elapse(float64, bool) {}

// Balancer generalizes the FanOut to several producers as well: PeekProduce
// scans producers in order, PeekConsume scans consumers in order.
type Balancer struct {
	Actor
	producers []Producer
	consumers []Consumer
	available listeners
	freed     listeners
}

func NewBalancer(s *Simulation, name string, producers []Producer, consumers []Consumer) *Balancer {
	b := &Balancer{producers: producers, consumers: consumers}
	s.register(&b.Actor, KindRouter, name, b)
	for _, p := range producers {
		p.OnAvailable(relay{out: &b.available})
	}
	for _, c := range consumers {
		c.OnFreed(relay{out: &b.freed})
	}
	return b
}

func (b *Balancer) PeekProduce() (Offer, bool) {
	for i, p := range b.producers {
		if o, ok := p.PeekProduce(); ok {
			return Offer{Item: o.Item, from: b, slot: i, inner: &o}, true
		}
	}
	return Offer{}, false
}

func (b *Balancer) Produce(o Offer) {
	if o.from != Producer(b) || o.inner == nil || o.slot < 0 || o.slot >= len(b.producers) {
		violation(b.name, "offer issued by %s", o.Source())
	}
	b.producers[o.slot].Produce(*o.inner)
}

func (b *Balancer) OnAvailable(l Listener) {
	b.available.add(l)
}

func (b *Balancer) PeekConsume(it *Item) (Claim, bool) {
	return claimFirst(b, b.consumers, it)
}

func (b *Balancer) Consume(c Claim) {
	commitClaim(b.name, b, b.consumers, c)
}

func (b *Balancer) OnFreed(l Listener) {
	b.freed.add(l)
}

func (b *Balancer) Elapse(float64, bool) {}

func claimFirst(self Consumer, consumers []Consumer, it *Item) (Claim, bool) {
	for i, c := range consumers {
		if cl, ok := c.PeekConsume(it); ok {
			return Claim{Item: it, to: self, slot: i, inner: &cl}, true
		}
	}
	return Claim{}, false
}

func commitClaim(name string, self Consumer, consumers []Consumer, c Claim) {
	if c.to != self || c.inner == nil || c.slot < 0 || c.slot >= len(consumers) {
		violation(name, "claim issued by %s", c.Target())
	}
	if c.inner.Item != c.Item {
		violation(name, "claim for %s carries %s", itemName(c.Item), itemName(c.inner.Item))
	}
	consumers[c.slot].Consume(*c.inner)
}
