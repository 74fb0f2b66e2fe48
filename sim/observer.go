package sim

// Observer is a passive actor that runs fn on every tick pass. It never
// schedules itself, so it observes the network exactly at Advance targets.
type Observer struct {
	Actor
	fn func(now float64)
}

func NewObserver(s *Simulation, name string, fn func(now float64)) *Observer {
	o := &Observer{fn: fn}
	s.register(&o.Actor, KindObserver, name, o)
	return o
}

func (o *Observer) Elapse(now float64, wake bool) {
	if wake || o.fn == nil {
		return
	}
	o.fn(now)
}
