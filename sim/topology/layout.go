package topology

import (
	"github.com/inference-sim/tiox/sim"
)

// Row is one stage as seen by a renderer.
type Row struct {
	Name string
	Kind sim.Kind
	// Count is in-flight items for a link, depth for a buffer and departures
	// for a sink.
	Count int
	Busy  bool
	// Progress holds the completion fraction of every timed item in the stage,
	// in item creation order.
	Progress []float64
}

// Layout is a read-only snapshot of a network at one clock value.
type Layout struct {
	Clock    float64
	Created  int
	Departed int
	Rows     []Row
}

// Snapshot describes stages in the given order. It only reads the network and
// is meant to be called between Advance calls, after the tick pass has
// refreshed item progress.
func Snapshot(s *sim.Simulation, stages []sim.Stage) Layout {
	progress := make(map[string][]float64)
	for _, it := range s.Items() {
		if owner := it.Owner(); owner != nil {
			progress[owner.Name()] = append(progress[owner.Name()], it.Progress)
		}
	}

	l := Layout{
		Clock:    s.Clock(),
		Created:  s.Metrics.ItemsCreated,
		Departed: s.Metrics.ItemsDeparted,
		Rows:     make([]Row, 0, len(stages)),
	}
	for _, st := range stages {
		row := Row{Name: st.Name(), Kind: st.Kind()}
		switch stage := st.(type) {
		case *sim.Link:
			row.Count = stage.InFlight()
			row.Progress = progress[st.Name()]
		case *sim.Buffer:
			row.Count = stage.Len()
		case *sim.Server:
			row.Busy = !stage.Idle()
			row.Progress = progress[st.Name()]
		case *sim.Sink:
			row.Count = stage.Departed()
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}
