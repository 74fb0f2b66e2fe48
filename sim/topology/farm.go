// Package topology wires stages into networks: the canonical server farm and
// arbitrary declarative graphs.
package topology

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/distribution"
)

// FarmConfig describes the canonical server farm:
// source -> request link -> buffer -> N servers -> response link -> sink.
// Servers must be >= 1.
type FarmConfig struct {
	Servers         int               `yaml:"servers"`
	Arrival         distribution.Spec `yaml:"arrival"`
	RequestTransit  distribution.Spec `yaml:"request_transit"`
	Service         distribution.Spec `yaml:"service"`
	ResponseTransit distribution.Spec `yaml:"response_transit"`
}

// DefaultFarmConfig returns ten servers at a tenth of the arrival rate each,
// so the farm runs near saturation.
func DefaultFarmConfig() FarmConfig {
	return FarmConfig{
		Servers:         10,
		Arrival:         distribution.RateCV(10, 1),
		RequestTransit:  distribution.MeanCV(1, 1),
		Service:         distribution.RateCV(0.1, 1),
		ResponseTransit: distribution.MeanCV(1, 1),
	}
}

// Validate returns an error naming the first invalid field.
func (c FarmConfig) Validate() error {
	if c.Servers < 1 {
		return fmt.Errorf("servers must be >= 1, got %d", c.Servers)
	}
	specs := []struct {
		name string
		spec distribution.Spec
	}{
		{"arrival", c.Arrival},
		{"request_transit", c.RequestTransit},
		{"service", c.Service},
		{"response_transit", c.ResponseTransit},
	}
	for _, s := range specs {
		if err := s.spec.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if c.Arrival.MeanValue() == 0 {
		return fmt.Errorf("arrival: mean must be positive")
	}
	return nil
}

// Farm holds the stages of a built server farm.
type Farm struct {
	Source       *sim.Source
	RequestLink  *sim.Link
	Buffer       *sim.Buffer
	FanOut       *sim.FanOut
	Driver       *sim.Driver
	Servers      []*sim.Server
	ResponseLink *sim.Link
	Sink         *sim.Sink
}

// BuildFarm registers the farm's actors on s. Each stochastic stage draws from
// its own rng subsystem.
func BuildFarm(s *sim.Simulation, cfg FarmConfig, rng *sim.PartitionedRNG) (*Farm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arrival, err := distribution.FromSpec(cfg.Arrival, rng.ForSubsystem(sim.SubsystemArrival))
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	request, err := distribution.FromSpec(cfg.RequestTransit, rng.ForSubsystem(sim.SubsystemRequestTransit))
	if err != nil {
		return nil, fmt.Errorf("request_transit: %w", err)
	}
	response, err := distribution.FromSpec(cfg.ResponseTransit, rng.ForSubsystem(sim.SubsystemResponseTransit))
	if err != nil {
		return nil, fmt.Errorf("response_transit: %w", err)
	}

	f := &Farm{}
	f.Source = sim.NewSource(s, "source", arrival)
	f.RequestLink = sim.NewLink(s, "request-link", request)
	f.Buffer = sim.NewBuffer(s, "buffer")
	f.ResponseLink = sim.NewLink(s, "response-link", response)
	f.Sink = sim.NewSink(s, "sink")

	consumers := make([]sim.Consumer, 0, cfg.Servers)
	for i := 0; i < cfg.Servers; i++ {
		service, err := distribution.FromSpec(cfg.Service, rng.ForSubsystem(sim.SubsystemServer(i)))
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		srv := sim.NewServer(s, sim.SubsystemServer(i), service)
		srv.Connect(f.ResponseLink)
		f.Servers = append(f.Servers, srv)
		consumers = append(consumers, srv)
	}

	f.Source.Connect(f.RequestLink)
	f.RequestLink.Connect(f.Buffer)
	f.ResponseLink.Connect(f.Sink)
	f.FanOut = sim.NewFanOut(s, "fanout", consumers)
	f.Driver = sim.NewDriver(s, "driver", f.Buffer, f.FanOut)

	logrus.Debugf("farm: %d servers, arrival %s, service %s", cfg.Servers, cfg.Arrival, cfg.Service)
	return f, nil
}

// Stages returns the farm's stages in flow order, for layout.
func (f *Farm) Stages() []sim.Stage {
	stages := []sim.Stage{f.Source, f.RequestLink, f.Buffer}
	for _, srv := range f.Servers {
		stages = append(stages, srv)
	}
	return append(stages, f.ResponseLink, f.Sink)
}

// Busy returns the number of servers holding an item.
func (f *Farm) Busy() int {
	n := 0
	for _, srv := range f.Servers {
		if !srv.Idle() {
			n++
		}
	}
	return n
}
