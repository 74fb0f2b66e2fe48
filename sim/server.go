package sim

import "github.com/sirupsen/logrus"

// Server is a single-slot stage: at most one item is resident at any instant.
// When service completes the item is pushed into the successor and every
// OnFreed listener is poked.
type Server struct {
	Actor
	delay    Distribution
	next     Acceptor
	resident *Item
	freed    listeners
	busy     float64
	served   int
}

func NewServer(s *Simulation, name string, delay Distribution) *Server {
	srv := &Server{delay: delay}
	s.register(&srv.Actor, KindServer, name, srv)
	return srv
}

// Connect sets the stage that receives items after service.
func (srv *Server) Connect(next Acceptor) {
	srv.next = next
}

// Resident returns the item in service, or nil when idle.
func (srv *Server) Resident() *Item {
	return srv.resident
}

// Idle reports whether the slot is empty.
func (srv *Server) Idle() bool {
	return srv.resident == nil
}

// BusyTime is the total service time of completed items.
func (srv *Server) BusyTime() float64 {
	return srv.busy
}

// Served is the number of completed services.
func (srv *Server) Served() int {
	return srv.served
}

// PeekConsume is true iff the server is idle.
func (srv *Server) PeekConsume(it *Item) (Claim, bool) {
	if srv.resident != nil {
		return Claim{}, false
	}
	return Claim{Item: it, to: srv}, true
}

func (srv *Server) Consume(c Claim) {
	if c.to != Consumer(srv) {
		violation(srv.name, "claim issued by %s", c.Target())
	}
	if srv.resident != nil {
		violation(srv.name, "consume of %s while serving %s", itemName(c.Item), srv.resident.name)
	}
	now := srv.sim.clock
	it := c.Item
	it.take(srv, now)
	srv.resident = it
	srv.sim.Metrics.recordWait(now - it.Enqueued)
	it.Schedule(now+sampleDelay(srv.name, srv.delay), PriorityServerCompletion)
}

func (srv *Server) OnFreed(l Listener) {
	srv.freed.add(l)
}

func (srv *Server) Elapse(float64, bool) {}

func (srv *Server) ElapseItem(now float64, it *Item, wake bool) {
	if !wake {
		it.trackProgress(now)
		return
	}
	if it != srv.resident {
		violation(srv.name, "completion of %s which is not resident", it.name)
	}
	if srv.next == nil {
		violation(srv.name, "no successor connected")
	}
	srv.busy += now - it.Start
	srv.served++
	srv.sim.Metrics.recordService(srv.name, now-it.Start)
	logrus.Debugf("[t=%.4f] %s completes %s", now, srv.name, it.name)

	it.release(srv)
	srv.next.Accept(it)
	srv.resident = nil
	srv.freed.notify()
}
