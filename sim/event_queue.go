package sim

import "container/heap"

// EventQueue is an updatable min-heap of actors keyed by (wake, priority, seq).
// Every live actor sits in the queue; dormant actors carry a +Inf wake.
// seq is refreshed on every key change, so actors sharing (wake, priority)
// fire in the order they were scheduled.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-PriorityQueue
type EventQueue struct {
	actors []*Actor
	seq    uint64
}

func newEventQueue() *EventQueue {
	q := &EventQueue{actors: make([]*Actor, 0)}
	heap.Init(q)
	return q
}

func (q *EventQueue) Len() int { return len(q.actors) }

func (q *EventQueue) Less(i, j int) bool {
	ai, aj := q.actors[i], q.actors[j]
	if ai.wake != aj.wake {
		return ai.wake < aj.wake
	}
	if ai.priority != aj.priority {
		return ai.priority < aj.priority
	}
	return ai.seq < aj.seq
}

func (q *EventQueue) Swap(i, j int) {
	q.actors[i], q.actors[j] = q.actors[j], q.actors[i]
	q.actors[i].index = i
	q.actors[j].index = j
}

func (q *EventQueue) Push(x any) {
	a := x.(*Actor)
	a.index = len(q.actors)
	q.actors = append(q.actors, a)
}

func (q *EventQueue) Pop() any {
	old := q.actors
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	a.index = -1
	q.actors = old[:n-1]
	return a
}

// Insert adds an actor with its current key.
func (q *EventQueue) Insert(a *Actor) {
	q.seq++
	a.seq = q.seq
	heap.Push(q, a)
}

// UpdateKey moves an actor to the position matching (wake, p).
func (q *EventQueue) UpdateKey(a *Actor, wake float64, p Priority) {
	if a.index < 0 {
		violation(a.name, "key update on actor outside the event queue")
	}
	a.wake = wake
	a.priority = p
	q.seq++
	a.seq = q.seq
	heap.Fix(q, a.index)
}

// Peek returns the minimum-key actor without removing it, or nil.
func (q *EventQueue) Peek() *Actor {
	if len(q.actors) == 0 {
		return nil
	}
	return q.actors[0]
}

// PopMin removes and returns the minimum-key actor, or nil.
func (q *EventQueue) PopMin() *Actor {
	if len(q.actors) == 0 {
		return nil
	}
	return heap.Pop(q).(*Actor)
}
