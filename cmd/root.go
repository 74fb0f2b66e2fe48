package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/topology"
	"github.com/inference-sim/tiox/sim/trace"
)

var (
	configPath     string  // YAML network configuration
	servers        int     // Number of servers in the farm
	seed           int64   // Seed for the partitioned RNG
	horizon        float64 // Simulated time to run to
	step           float64 // Advance increment
	logLevel       string  // Log verbosity level
	traceLevel     string  // Trace verbosity: none, decisions, items
	summarizeTrace bool    // Print a trace summary after the run
	jsonOutput     bool    // Print metrics as JSON
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tiox",
	Short: "Discrete-event simulator for queueing networks",
}

// runCmd executes the simulation to the horizon and prints metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation to the horizon",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation: seed=%d horizon=%v step=%v servers=%d arrival=%s service=%s",
			cfg.Seed, cfg.Horizon, cfg.Step, cfg.Servers, cfg.Arrival, cfg.Service)
		startTime := time.Now()

		s, err := runSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		if err := report(cmd.OutOrStdout(), s, jsonOutput, summarizeTrace); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads --config (or the defaults) and applies flags the user
// set explicitly, so an unset flag never overwrites a config value.
func resolveConfig(cmd *cobra.Command) (NetworkConfig, error) {
	cfg := DefaultNetworkConfig()
	if configPath != "" {
		loaded, err := LoadNetworkConfig(configPath)
		if err != nil {
			return NetworkConfig{}, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("servers") {
		cfg.Servers = servers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}
	if err := cfg.Validate(); err != nil {
		return NetworkConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildNetwork wires the configured graph, or the farm when none is given,
// and returns its stages in layout order.
func buildNetwork(s *sim.Simulation, cfg NetworkConfig) ([]sim.Stage, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	if cfg.Graph != nil {
		g, err := topology.BuildGraph(s, *cfg.Graph, rng)
		if err != nil {
			return nil, err
		}
		return g.Stages(), nil
	}
	f, err := topology.BuildFarm(s, cfg.FarmConfig, rng)
	if err != nil {
		return nil, err
	}
	return f.Stages(), nil
}

// runSimulation advances to the horizon in steps of cfg.Step.
func runSimulation(cfg NetworkConfig) (*sim.Simulation, error) {
	s := sim.NewSimulation()
	s.EnableTrace(trace.TraceConfig{Level: trace.TraceLevel(cfg.TraceLevel)})
	if _, err := buildNetwork(s, cfg); err != nil {
		return nil, err
	}
	err := guard(func() {
		for i := 1; s.Clock() < cfg.Horizon; i++ {
			s.Advance(min(float64(i)*cfg.Step, cfg.Horizon))
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// guard converts a kernel contract panic into an error. Other panics are
// re-raised.
func guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ce *sim.ContractError
		if e, ok := r.(error); ok && errors.As(e, &ce) {
			err = ce
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

func report(w io.Writer, s *sim.Simulation, asJSON, withTrace bool) error {
	if asJSON {
		if err := s.Metrics.WriteJSON(w, s.Clock()); err != nil {
			return err
		}
	} else {
		s.Metrics.Print(w, s.Clock())
	}
	if !withTrace || s.Trace == nil {
		return nil
	}
	summary := trace.Summarize(s.Trace)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Routing Decisions    : %d\n", summary.TotalDecisions)
	fmt.Fprintf(w, "Unique Targets       : %d\n", summary.UniqueTargets)
	if summary.ItemsCreated > 0 || summary.ItemsDeparted > 0 {
		fmt.Fprintf(w, "Items Traced         : %d created, %d departed\n", summary.ItemsCreated, summary.ItemsDeparted)
	}
	targets := make([]string, 0, len(summary.TargetDistribution))
	for name := range summary.TargetDistribution {
		targets = append(targets, name)
	}
	slices.Sort(targets)
	for _, name := range targets {
		fmt.Fprintf(w, "  %-18s : %d\n", name, summary.TargetDistribution[name])
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "YAML network configuration (see default-config)")
	cmd.Flags().IntVar(&servers, "servers", 10, "Number of servers in the farm")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the partitioned RNG")
	cmd.Flags().Float64Var(&horizon, "horizon", 100, "Simulated time to run to")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	addNetworkFlags(runCmd)
	runCmd.Flags().Float64Var(&step, "step", 1, "Advance increment; ticks happen at every multiple")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Trace verbosity (none, decisions, items)")
	runCmd.Flags().BoolVar(&summarizeTrace, "summarize-trace", false, "Print a trace summary after the run")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print metrics as JSON")

	addNetworkFlags(watchCmd)
	watchCmd.Flags().Float64Var(&speed, "speed", 1, "Simulated time units per wall-clock second")
	watchCmd.Flags().Float64Var(&fps, "fps", 32, "Frames per second")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(defaultConfigCmd)
}
