package sim

// Link is an unbounded transit stage: any number of items travel through it
// concurrently, each for its own sampled delay.
type Link struct {
	Actor
	delay    Distribution
	next     Acceptor
	inFlight int
}

func NewLink(s *Simulation, name string, delay Distribution) *Link {
	l := &Link{delay: delay}
	s.register(&l.Actor, KindLink, name, l)
	return l
}

// Connect sets the stage that receives items at the end of transit.
func (l *Link) Connect(next Acceptor) {
	l.next = next
}

// InFlight returns the number of items currently in transit.
func (l *Link) InFlight() int {
	return l.inFlight
}

func (l *Link) Accept(it *Item) {
	now := l.sim.clock
	it.take(l, now)
	l.inFlight++
	it.Schedule(now+sampleDelay(l.name, l.delay), PriorityTransitArrival)
}

func (l *Link) PeekConsume(it *Item) (Claim, bool) {
	return Claim{Item: it, to: l}, true
}

func (l *Link) Consume(c Claim) {
	if c.to != Consumer(l) {
		violation(l.name, "claim issued by %s", c.Target())
	}
	l.Accept(c.Item)
}

// OnFreed is a no-op: a Link never refuses an item.
func (l *Link) OnFreed(Listener) {}

func (l *Link) Elapse(float64, bool) {}

func (l *Link) ElapseItem(now float64, it *Item, wake bool) {
	if !wake {
		it.trackProgress(now)
		return
	}
	if l.next == nil {
		violation(l.name, "no successor connected")
	}
	it.release(l)
	l.inFlight--
	l.next.Accept(it)
}
