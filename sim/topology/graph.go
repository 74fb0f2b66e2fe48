package topology

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/distribution"
)

// Stage kinds accepted in a GraphSpec.
const (
	StageSource = "source"
	StageLink   = "link"
	StageBuffer = "buffer"
	StageServer = "server"
	StageSink   = "sink"
)

// StageSpec declares one stage. Delay is the inter-arrival distribution of a
// source and the per-item delay of a link or server. Next is required for
// sources, links and servers, which push unconditionally, and must name an
// unbounded stage.
type StageSpec struct {
	Name  string             `yaml:"name"`
	Kind  string             `yaml:"kind"`
	Delay *distribution.Spec `yaml:"delay,omitempty"`
	Next  string             `yaml:"next,omitempty"`
}

// RouteSpec declares a router moving items from producers to consumers.
// Candidates are tried in list order.
type RouteSpec struct {
	Name string   `yaml:"name"`
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
}

// GraphSpec is a declarative network.
type GraphSpec struct {
	Stages []StageSpec `yaml:"stages"`
	Routes []RouteSpec `yaml:"routes"`
}

// Validate checks names, kinds and delays, and rejects routes whose producers
// and consumers overlap. Capability errors are only detected
// by BuildGraph.
func (g GraphSpec) Validate() error {
	if len(g.Stages) == 0 {
		return fmt.Errorf("graph has no stages")
	}
	seen := make(map[string]bool, len(g.Stages)+len(g.Routes))
	for i, st := range g.Stages {
		if st.Name == "" {
			return fmt.Errorf("stages[%d]: name is required", i)
		}
		if seen[st.Name] {
			return fmt.Errorf("stages[%d]: duplicate name %q", i, st.Name)
		}
		seen[st.Name] = true
		switch st.Kind {
		case StageSource, StageLink, StageServer:
			if st.Delay == nil {
				return fmt.Errorf("stage %q: %s requires a delay", st.Name, st.Kind)
			}
			if err := st.Delay.Validate(); err != nil {
				return fmt.Errorf("stage %q: delay: %w", st.Name, err)
			}
			if st.Kind == StageSource && st.Delay.MeanValue() == 0 {
				return fmt.Errorf("stage %q: source inter-arrival mean must be positive", st.Name)
			}
			if st.Next == "" {
				return fmt.Errorf("stage %q: %s requires next", st.Name, st.Kind)
			}
		case StageBuffer, StageSink:
			if st.Delay != nil {
				return fmt.Errorf("stage %q: %s takes no delay", st.Name, st.Kind)
			}
			if st.Next != "" {
				return fmt.Errorf("stage %q: %s is drained by routes, not next", st.Name, st.Kind)
			}
		default:
			return fmt.Errorf("stage %q: unknown kind %q", st.Name, st.Kind)
		}
	}
	for i, r := range g.Routes {
		if r.Name == "" {
			return fmt.Errorf("routes[%d]: name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("routes[%d]: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
		if len(r.From) == 0 || len(r.To) == 0 {
			return fmt.Errorf("route %q: from and to must be non-empty", r.Name)
		}
		for _, from := range r.From {
			for _, to := range r.To {
				if from == to {
					return fmt.Errorf("route %q: stage %q is both producer and consumer", r.Name, from)
				}
			}
		}
	}
	return nil
}

// Graph holds the stages and routers of a built GraphSpec.
type Graph struct {
	stages  map[string]sim.Stage
	order   []string
	Drivers []*sim.Driver
}

// Stage returns the named stage, or nil.
func (g *Graph) Stage(name string) sim.Stage {
	return g.stages[name]
}

// Stages returns the stages in declaration order, for layout.
func (g *Graph) Stages() []sim.Stage {
	out := make([]sim.Stage, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.stages[name])
	}
	return out
}

// BuildGraph registers the declared network on s. Each stochastic stage draws
// from rng subsystem SubsystemStage(name).
func BuildGraph(s *sim.Simulation, spec GraphSpec, rng *sim.PartitionedRNG) (*Graph, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{stages: make(map[string]sim.Stage, len(spec.Stages))}

	for _, st := range spec.Stages {
		var delay distribution.Sampler
		if st.Delay != nil {
			d, err := distribution.FromSpec(*st.Delay, rng.ForSubsystem(sim.SubsystemStage(st.Name)))
			if err != nil {
				return nil, fmt.Errorf("stage %q: %w", st.Name, err)
			}
			delay = d
		}
		var stage sim.Stage
		switch st.Kind {
		case StageSource:
			stage = sim.NewSource(s, st.Name, delay)
		case StageLink:
			stage = sim.NewLink(s, st.Name, delay)
		case StageBuffer:
			stage = sim.NewBuffer(s, st.Name)
		case StageServer:
			stage = sim.NewServer(s, st.Name, delay)
		case StageSink:
			stage = sim.NewSink(s, st.Name)
		}
		g.stages[st.Name] = stage
		g.order = append(g.order, st.Name)
	}

	// push edges: only unbounded stages may sit behind a force-feeding stage
	for _, st := range spec.Stages {
		if st.Next == "" {
			continue
		}
		target, err := g.lookup(st.Next)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", st.Name, err)
		}
		next, err := sim.AsAcceptor(target)
		if err != nil {
			return nil, fmt.Errorf("stage %q: next %q: %w", st.Name, st.Next, err)
		}
		switch stage := g.stages[st.Name].(type) {
		case *sim.Source:
			stage.Connect(next)
		case *sim.Link:
			stage.Connect(next)
		case *sim.Server:
			stage.Connect(next)
		}
	}

	fed := make(map[string]bool)
	for _, r := range spec.Routes {
		producers := make([]sim.Producer, 0, len(r.From))
		for _, name := range r.From {
			stage, err := g.lookup(name)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", r.Name, err)
			}
			p, err := sim.AsProducer(stage)
			if err != nil {
				return nil, fmt.Errorf("route %q: from %q: %w", r.Name, name, err)
			}
			producers = append(producers, p)
		}
		consumers := make([]sim.Consumer, 0, len(r.To))
		for _, name := range r.To {
			stage, err := g.lookup(name)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", r.Name, err)
			}
			c, err := sim.AsConsumer(stage)
			if err != nil {
				return nil, fmt.Errorf("route %q: to %q: %w", r.Name, name, err)
			}
			consumers = append(consumers, c)
			fed[name] = true
		}
		g.Drivers = append(g.Drivers, buildRoute(s, r.Name, producers, consumers))
	}

	for _, st := range spec.Stages {
		if st.Kind == StageServer && !fed[st.Name] {
			logrus.Warnf("graph: server %q is not the target of any route", st.Name)
		}
	}
	return g, nil
}

// buildRoute picks the simplest router for the fan-in and fan-out of a route.
func buildRoute(s *sim.Simulation, name string, producers []sim.Producer, consumers []sim.Consumer) *sim.Driver {
	switch {
	case len(producers) == 1 && len(consumers) == 1:
		return sim.NewDriver(s, name, producers[0], consumers[0])
	case len(producers) == 1:
		fan := sim.NewFanOut(s, name+"/fanout", consumers)
		return sim.NewDriver(s, name, producers[0], fan)
	default:
		bal := sim.NewBalancer(s, name+"/balancer", producers, consumers)
		return sim.NewDriver(s, name, bal, bal)
	}
}

func (g *Graph) lookup(name string) (sim.Stage, error) {
	stage, ok := g.stages[name]
	if !ok {
		known := slices.Clone(g.order)
		slices.Sort(known)
		return nil, fmt.Errorf("unknown stage %q (known: %v)", name, known)
	}
	return stage, nil
}
