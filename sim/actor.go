package sim

import (
	"math"
)

// ActorID identifies an actor within one Simulation. IDs are assigned in
// registration order and never reused.
type ActorID uint64

// Handler is the event-fire callback of an actor. wake is true when the actor
// was popped because its wake time came due, and false during the tick pass
// that closes every Advance call.
type Handler interface {
	Elapse(now float64, wake bool)
}

// Actor is the schedulable record shared by every stage, router and item.
// Its queue key is always (wake, priority); both are changed only through
// SetWake / Schedule so the heap position stays in sync.
type Actor struct {
	sim       *Simulation
	id        ActorID
	name      string
	kind      Kind
	wake      float64
	priority  Priority
	seq       uint64
	index     int
	handler   Handler
	cancelled bool
}

func (a *Actor) ID() ActorID             { return a.id }
func (a *Actor) Name() string            { return a.name }
func (a *Actor) Kind() Kind              { return a.kind }
func (a *Actor) Wake() float64           { return a.wake }
func (a *Actor) Priority() Priority      { return a.priority }
func (a *Actor) Cancelled() bool         { return a.cancelled }
func (a *Actor) Simulation() *Simulation { return a.sim }

// SetWake reschedules the actor at t, keeping its priority class.
func (a *Actor) SetWake(t float64) {
	a.Schedule(t, a.priority)
}

// Schedule reschedules the actor at t under priority class p.
// math.Inf(1) makes the actor dormant.
func (a *Actor) Schedule(t float64, p Priority) {
	if a.cancelled {
		violation(a.name, "schedule after cancel")
	}
	if math.IsNaN(t) {
		violation(a.name, "wake time is NaN")
	}
	if p == PriorityCancel {
		violation(a.name, "priority class %s is reserved for Cancel", p)
	}
	a.sim.queue.UpdateKey(a, t, p)
}

// Cancel removes the actor from the event queue and the live set. It is
// irreversible: any later Schedule on the actor is a contract violation.
func (a *Actor) Cancel() {
	if a.cancelled {
		violation(a.name, "cancel called twice")
	}
	s := a.sim
	s.queue.UpdateKey(a, math.Inf(-1), PriorityCancel)
	popped := s.queue.PopMin()
	if popped != a {
		violation(a.name, "cancel popped a different actor")
	}
	delete(s.live, a.id)
	a.cancelled = true
}
