// Implements the Buffer, an unbounded FIFO stage holding items until a router
// moves them on.

package sim

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Buffer is an unbounded FIFO queue of items. Items leave in exactly the order
// they entered; there is no reordering or priority-based dequeue.
type Buffer struct {
	Actor
	queue     []*Item
	available listeners
}

func NewBuffer(s *Simulation, name string) *Buffer {
	b := &Buffer{queue: make([]*Item, 0)}
	s.register(&b.Actor, KindBuffer, name, b)
	return b
}

// Accept appends the item to the tail and notifies "became non-empty".
func (b *Buffer) Accept(it *Item) {
	now := b.sim.clock
	it.take(b, now)
	it.Enqueued = now
	b.queue = append(b.queue, it)
	b.sim.Metrics.recordDepth(len(b.queue))
	logrus.Tracef("[t=%.4f] %s enqueues %s (depth %d)", now, b.name, it.name, len(b.queue))
	b.available.notify()
}

func (b *Buffer) PeekConsume(it *Item) (Claim, bool) {
	return Claim{Item: it, to: b}, true
}

func (b *Buffer) Consume(c Claim) {
	if c.to != Consumer(b) {
		violation(b.name, "claim issued by %s", c.Target())
	}
	b.Accept(c.Item)
}

// OnFreed is a no-op: a Buffer never refuses an item.
func (b *Buffer) OnFreed(Listener) {}

// PeekProduce returns the head without removing it.
func (b *Buffer) PeekProduce() (Offer, bool) {
	if len(b.queue) == 0 {
		return Offer{}, false
	}
	return Offer{Item: b.queue[0], from: b}, true
}

// Produce removes the head. The offer must name the current head.
func (b *Buffer) Produce(o Offer) {
	if o.from != Producer(b) {
		violation(b.name, "offer issued by %s", o.Source())
	}
	if len(b.queue) == 0 || b.queue[0] != o.Item {
		violation(b.name, "produce of %s which is not the head", itemName(o.Item))
	}
	head := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	head.release(b)
}

// OnAvailable subscribes l to "became non-empty" notifications.
func (b *Buffer) OnAvailable(l Listener) {
	b.available.add(l)
}

// Len returns the number of queued items.
func (b *Buffer) Len() int {
	return len(b.queue)
}

// Items returns the queue contents, head first.
// The returned slice is the buffer's internal storage; callers MUST NOT modify it.
func (b *Buffer) Items() []*Item {
	return b.queue
}

func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, it := range b.queue {
		sb.WriteString(it.name)
		if i < len(b.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

func (b *Buffer) Elapse(float64, bool) {}

// ElapseItem is a no-op: queued items are passive until produced.
func (b *Buffer) ElapseItem(float64, *Item, bool) {}

func itemName(it *Item) string {
	if it == nil {
		return "<nil>"
	}
	return it.name
}
