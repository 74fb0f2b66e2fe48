package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/tiox/sim/topology"
	"github.com/inference-sim/tiox/sim/trace"
)

// NetworkConfig is the YAML run configuration. The farm fields are inlined at
// the top level; when Graph is set it replaces the farm.
type NetworkConfig struct {
	Seed       int64   `yaml:"seed"`
	Horizon    float64 `yaml:"horizon"`
	Step       float64 `yaml:"step"`
	TraceLevel string  `yaml:"trace_level"`

	topology.FarmConfig `yaml:",inline"`

	Graph *topology.GraphSpec `yaml:"graph,omitempty"`
}

// DefaultNetworkConfig returns the default farm run for 100 time units.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Seed:       42,
		Horizon:    100,
		Step:       1,
		TraceLevel: string(trace.TraceLevelNone),
		FarmConfig: topology.DefaultFarmConfig(),
	}
}

// ParseNetworkConfig decodes YAML with strict field checking: typos are
// errors. Missing fields take their defaults; a seed of 0 selects the default
// seed, use --seed 0 to force it.
func ParseNetworkConfig(r io.Reader) (NetworkConfig, error) {
	var cfg NetworkConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return NetworkConfig{}, fmt.Errorf("parsing network config: %w", err)
	}
	cfg.applyDefaults(DefaultNetworkConfig())
	return cfg, nil
}

// LoadNetworkConfig reads and parses a YAML file.
func LoadNetworkConfig(path string) (NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NetworkConfig{}, fmt.Errorf("reading network config: %w", err)
	}
	return ParseNetworkConfig(bytes.NewReader(data))
}

func (c *NetworkConfig) applyDefaults(d NetworkConfig) {
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.Horizon == 0 {
		c.Horizon = d.Horizon
	}
	if c.Step == 0 {
		c.Step = d.Step
	}
	if c.TraceLevel == "" {
		c.TraceLevel = d.TraceLevel
	}
	if c.Servers == 0 {
		c.Servers = d.Servers
	}
	// a section that names neither mean nor rate was omitted
	if c.Arrival.Mean == nil && c.Arrival.Rate == nil {
		c.Arrival = d.Arrival
	}
	if c.RequestTransit.Mean == nil && c.RequestTransit.Rate == nil {
		c.RequestTransit = d.RequestTransit
	}
	if c.Service.Mean == nil && c.Service.Rate == nil {
		c.Service = d.Service
	}
	if c.ResponseTransit.Mean == nil && c.ResponseTransit.Rate == nil {
		c.ResponseTransit = d.ResponseTransit
	}
}

// Validate returns an error naming the first invalid field.
func (c NetworkConfig) Validate() error {
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("horizon must be positive and finite, got %v", c.Horizon)
	}
	if !(c.Step > 0) {
		return fmt.Errorf("step must be positive, got %v", c.Step)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q; valid: none, decisions, items", c.TraceLevel)
	}
	if c.Graph != nil {
		if err := c.Graph.Validate(); err != nil {
			return fmt.Errorf("graph: %w", err)
		}
		return nil
	}
	return c.FarmConfig.Validate()
}

// defaultConfigCmd prints the default configuration as YAML.
var defaultConfigCmd = &cobra.Command{
	Use:   "default-config",
	Short: "Print the default network configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefaultConfig(cmd.OutOrStdout())
	},
}

func writeDefaultConfig(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultNetworkConfig()); err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	return enc.Close()
}
