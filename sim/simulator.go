// sim/simulator.go
package sim

import (
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/tiox/sim/trace"
)

// Simulation is the core object that holds the clock, the event queue and the
// set of live actors. It is single-threaded: every stage callback runs to
// completion inside Advance.
type Simulation struct {
	clock float64
	queue *EventQueue
	live  map[ActorID]*Actor
	// lastID is the ID handed to the most recently registered actor
	lastID ActorID
	// Metrics is fed by Sources, Servers and Sinks as items move through the network
	Metrics *Metrics
	// Trace is nil unless decision or item tracing was requested
	Trace *trace.SimulationTrace
}

// NewSimulation creates an empty simulation with the clock at zero.
func NewSimulation() *Simulation {
	return &Simulation{
		queue:   newEventQueue(),
		live:    make(map[ActorID]*Actor),
		Metrics: NewMetrics(),
	}
}

// EnableTrace attaches a trace collector. TraceLevelNone detaches it.
func (s *Simulation) EnableTrace(config trace.TraceConfig) {
	if config.Level == trace.TraceLevelNone || config.Level == "" {
		s.Trace = nil
		return
	}
	s.Trace = trace.NewSimulationTrace(config)
}

// Clock returns the current simulated time.
func (s *Simulation) Clock() float64 {
	return s.clock
}

// register binds a freshly constructed actor to the simulation: it enters the
// live set and the event queue as a dormant actor.
func (s *Simulation) register(a *Actor, kind Kind, name string, h Handler) {
	s.lastID++
	a.sim = s
	a.id = s.lastID
	a.name = name
	a.kind = kind
	a.wake = math.Inf(1)
	a.priority = PriorityDefault
	a.handler = h
	a.index = -1
	s.live[a.id] = a
	s.queue.Insert(a)
}

// Advance fires every event due strictly before target, in (wake, priority)
// order, then gives every live actor one tick with wake=false and finally sets
// the clock to target. A target behind the clock, or an actor still due after
// the firing loop, aborts the run.
func (s *Simulation) Advance(target float64) {
	if math.IsNaN(target) || target < s.clock {
		violation("simulation", "advance to %v behind clock %v", target, s.clock)
	}
	for {
		next := s.queue.Peek()
		if next == nil || !(next.wake < target) {
			break
		}
		// floating comparisons may admit a wake slightly behind the clock
		fire := max(next.wake, s.clock)
		s.clock = fire
		s.queue.UpdateKey(next, math.Inf(1), next.priority)
		logrus.Tracef("[t=%.4f] fire %s (%s)", fire, next.name, next.priority)
		next.handler.Elapse(fire, true)
	}

	snapshot := s.Actors()
	for _, a := range snapshot {
		if a.wake < target {
			violation(a.name, "missed event: wake %v before target %v", a.wake, target)
		}
	}
	// actors may be cancelled by another actor's tick
	for _, a := range snapshot {
		if a.cancelled {
			continue
		}
		a.handler.Elapse(target, false)
	}
	s.clock = target
}

// Actors returns the live actors in registration order. The slice is a copy.
func (s *Simulation) Actors() []*Actor {
	actors := make([]*Actor, 0, len(s.live))
	for _, a := range s.live {
		actors = append(actors, a)
	}
	slices.SortFunc(actors, func(x, y *Actor) int {
		switch {
		case x.id < y.id:
			return -1
		case x.id > y.id:
			return 1
		}
		return 0
	})
	return actors
}

// Items returns the live items in creation order.
func (s *Simulation) Items() []*Item {
	items := make([]*Item, 0)
	for _, a := range s.Actors() {
		if it, ok := a.handler.(*Item); ok {
			items = append(items, it)
		}
	}
	return items
}

// Live reports whether the actor is still registered.
func (s *Simulation) Live(a *Actor) bool {
	_, ok := s.live[a.id]
	return ok && !a.cancelled
}

// Len returns the number of live actors.
func (s *Simulation) Len() int {
	return len(s.live)
}

// Queued reports whether the actor is still present in the event queue.
func (s *Simulation) Queued(a *Actor) bool {
	return a.index >= 0 && a.index < s.queue.Len() && s.queue.actors[a.index] == a
}

// NextWake returns the earliest pending wake time, +Inf when nothing is due.
func (s *Simulation) NextWake() float64 {
	next := s.queue.Peek()
	if next == nil {
		return math.Inf(1)
	}
	return next.wake
}

// OwnedItems counts live items currently held by some stage. Together with
// Metrics.ItemsCreated and Metrics.ItemsDeparted it checks conservation.
func (s *Simulation) OwnedItems() int {
	n := 0
	for _, a := range s.live {
		if a.kind != KindItem {
			continue
		}
		if it, ok := a.handler.(*Item); ok && it.owner != nil {
			n++
		}
	}
	return n
}
