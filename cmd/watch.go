package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/tiox/sim"
	"github.com/inference-sim/tiox/sim/render"
	"github.com/inference-sim/tiox/sim/topology"
)

var (
	speed float64 // Simulated time units per wall-clock second
	fps   float64 // Frames per second
)

// watchCmd animates the network in the terminal
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate the simulation in the terminal (space: play/pause, +/-: speed, q: quit)",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !(speed > 0) || !(fps > 0) {
			logrus.Fatalf("speed and fps must be positive, got %v and %v", speed, fps)
		}

		s := sim.NewSimulation()
		stages, err := buildNetwork(s, cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		m := newWatchModel(s, stages, cfg.Horizon, speed, fps)
		final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		if err != nil {
			logrus.Fatalf("watch: %v", err)
		}
		if wm, ok := final.(watchModel); ok && wm.err != nil {
			logrus.Fatalf("Simulation aborted: %v", wm.err)
		}
		s.Metrics.Print(cmd.OutOrStdout(), s.Clock())
	},
}

type frameMsg time.Time

// watchModel is the bubbletea host: every frame advances the clock by
// speed/fps unless paused.
type watchModel struct {
	s       *sim.Simulation
	stages  []sim.Stage
	horizon float64
	speed   float64
	fps     float64
	paused  bool
	done    bool
	width   int
	palette render.Palette
	err     error
}

func newWatchModel(s *sim.Simulation, stages []sim.Stage, horizon, speed, fps float64) watchModel {
	return watchModel{
		s:       s,
		stages:  stages,
		horizon: horizon,
		speed:   speed,
		fps:     fps,
		width:   40,
		palette: render.DefaultPalette(),
	}
}

func (m watchModel) frame() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return m.frame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speed *= 2
		case "-":
			m.speed /= 2
		}
		return m, nil

	case tea.WindowSizeMsg:
		// leave room for labels and counters
		m.width = max(msg.Width-40, 10)
		return m, nil

	case frameMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			target := min(m.s.Clock()+m.speed/m.fps, m.horizon)
			if err := guard(func() { m.s.Advance(target) }); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if m.s.Clock() >= m.horizon {
				m.done = true
				m.paused = true
				return m, nil
			}
		}
		return m, m.frame()
	}
	return m, nil
}

func (m watchModel) View() string {
	status := fmt.Sprintf("speed %gx", m.speed)
	switch {
	case m.done:
		status += "  horizon reached, q to quit"
	case m.paused:
		status += "  paused"
	}
	return render.Frame(topology.Snapshot(m.s, m.stages), render.Options{
		Width:   m.width,
		Palette: m.palette,
		Status:  status,
	})
}
