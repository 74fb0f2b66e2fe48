package sim

// Priority orders actors that share a wake time. Lower values fire first.
//
// Cancel is reserved for Actor.Cancel. Server completions run before transit
// arrivals so a server freed at t can take an item that reaches the queue at t.
type Priority int

const (
	PriorityCancel Priority = iota
	PriorityServerCompletion
	PriorityTransitArrival
	PriorityDefault
)

var priorityNames = map[Priority]string{
	PriorityCancel:           "cancel",
	PriorityServerCompletion: "server-completion",
	PriorityTransitArrival:   "transit-arrival",
	PriorityDefault:          "default",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// Kind tags the stage variant an actor plays in the network.
type Kind int

const (
	KindItem Kind = iota
	KindSource
	KindLink
	KindBuffer
	KindServer
	KindSink
	KindRouter
	KindObserver
)

var kindNames = [...]string{
	KindItem:     "item",
	KindSource:   "source",
	KindLink:     "link",
	KindBuffer:   "buffer",
	KindServer:   "server",
	KindSink:     "sink",
	KindRouter:   "router",
	KindObserver: "observer",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
