package sim

import "fmt"

// Holder is a stage that can own items. It receives the item's own events:
// wake=true when the item's stage completion comes due, wake=false on ticks.
type Holder interface {
	Name() string
	ElapseItem(now float64, it *Item, wake bool)
}

// Item is a unit of work flowing through the network. Its wake time is the
// completion of whatever stage currently holds it.
//
// Lifecycle: created by a Source, owned by at most one stage at a time,
// cancelled by a Sink.
type Item struct {
	Actor
	owner Holder
	// Created is the clock at which the Source emitted the item
	Created float64
	// Start is the clock at which the item entered its current stage
	Start float64
	// Enqueued is the clock at which the item last entered a Buffer
	Enqueued float64
	// Progress is the fraction of the current timed stage already elapsed,
	// refreshed on every tick for renderers
	Progress float64
}

func newItem(s *Simulation, now float64) *Item {
	it := &Item{Created: now, Start: now}
	s.register(&it.Actor, KindItem, fmt.Sprintf("item-%d", s.lastID+1), it)
	return it
}

// Owner returns the stage currently holding the item, or nil.
func (it *Item) Owner() Holder {
	return it.owner
}

// Elapse forwards the item's events to its owner.
func (it *Item) Elapse(now float64, wake bool) {
	if it.owner != nil {
		it.owner.ElapseItem(now, it, wake)
	}
}

// take makes h the owner and stamps the stage entry time.
func (it *Item) take(h Holder, now float64) {
	if it.owner != nil {
		violation(it.name, "taken by %s while owned by %s", h.Name(), it.owner.Name())
	}
	it.owner = h
	it.Start = now
	it.Progress = 0
}

// release clears ownership; only the current owner may release.
func (it *Item) release(h Holder) {
	if it.owner != h {
		violation(it.name, "released by %s which does not own it", h.Name())
	}
	it.owner = nil
}

// trackProgress updates Progress for an item whose completion is at wake.
func (it *Item) trackProgress(now float64) {
	span := it.wake - it.Start
	if span <= 0 {
		it.Progress = 1
		return
	}
	it.Progress = min(1, max(0, (now-it.Start)/span))
}
