// Tracks simulation-wide and per-item statistics: item counts, sojourn and
// queue-wait times, peak buffer depth and per-server service time.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	ItemsCreated    int // Number of items emitted by all sources
	ItemsDeparted   int // Number of items terminated by all sinks
	PeakBufferDepth int // Max depth any buffer reached, including transient depth within an instant

	DepartureTimes []float64          // clock of each departure, in departure order
	SojournTimes   []float64          // departure - creation, per departed item
	WaitTimes      []float64          // server start - buffer entry, per service
	ServiceTime    map[string]float64 // server name -> total completed service time
	Served         map[string]int     // server name -> completed services
}

func NewMetrics() *Metrics {
	return &Metrics{
		DepartureTimes: make([]float64, 0),
		SojournTimes:   make([]float64, 0),
		WaitTimes:      make([]float64, 0),
		ServiceTime:    make(map[string]float64),
		Served:         make(map[string]int),
	}
}

func (m *Metrics) recordCreated(*Item) {
	m.ItemsCreated++
}

func (m *Metrics) recordDeparture(it *Item, now float64) {
	m.ItemsDeparted++
	m.DepartureTimes = append(m.DepartureTimes, now)
	m.SojournTimes = append(m.SojournTimes, now-it.Created)
}

func (m *Metrics) recordWait(wait float64) {
	m.WaitTimes = append(m.WaitTimes, max(0, wait))
}

func (m *Metrics) recordService(server string, d float64) {
	m.ServiceTime[server] += d
	m.Served[server]++
}

func (m *Metrics) recordDepth(depth int) {
	m.PeakBufferDepth = max(m.PeakBufferDepth, depth)
}

// Utilization returns completed service time over elapsed time per server.
func (m *Metrics) Utilization(clock float64) map[string]float64 {
	util := make(map[string]float64, len(m.ServiceTime))
	if clock <= 0 {
		return util
	}
	for name, busy := range m.ServiceTime {
		util[name] = busy / clock
	}
	return util
}

// Report is the serializable end-of-run summary.
type Report struct {
	Clock           float64            `json:"clock"`
	ItemsCreated    int                `json:"items_created"`
	ItemsDeparted   int                `json:"items_departed"`
	ItemsInFlight   int                `json:"items_in_flight"`
	PeakBufferDepth int                `json:"peak_buffer_depth"`
	Throughput      float64            `json:"throughput"`
	Sojourn         SampleSummary      `json:"sojourn"`
	Wait            SampleSummary      `json:"wait"`
	Utilization     map[string]float64 `json:"utilization"`
}

// Report builds the end-of-run summary at the given clock.
func (m *Metrics) Report(clock float64) Report {
	r := Report{
		Clock:           clock,
		ItemsCreated:    m.ItemsCreated,
		ItemsDeparted:   m.ItemsDeparted,
		ItemsInFlight:   m.ItemsCreated - m.ItemsDeparted,
		PeakBufferDepth: m.PeakBufferDepth,
		Sojourn:         Summarize(m.SojournTimes),
		Wait:            Summarize(m.WaitTimes),
		Utilization:     m.Utilization(clock),
	}
	if clock > 0 {
		r.Throughput = float64(m.ItemsDeparted) / clock
	}
	return r
}

// Print displays the end-of-run summary.
func (m *Metrics) Print(w io.Writer, clock float64) {
	r := m.Report(clock)
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Clock                : %.4f\n", r.Clock)
	fmt.Fprintf(w, "Items Created        : %d\n", r.ItemsCreated)
	fmt.Fprintf(w, "Items Departed       : %d\n", r.ItemsDeparted)
	fmt.Fprintf(w, "Items In Flight      : %d\n", r.ItemsInFlight)
	fmt.Fprintf(w, "Peak Buffer Depth    : %d\n", r.PeakBufferDepth)
	fmt.Fprintf(w, "Throughput           : %.4f items/unit\n", r.Throughput)
	if r.Sojourn.Count > 0 {
		fmt.Fprintf(w, "Sojourn mean/sd      : %.4f / %.4f\n", r.Sojourn.Mean, r.Sojourn.StdDev)
		fmt.Fprintf(w, "Sojourn p50/p95/p99  : %.4f / %.4f / %.4f\n", r.Sojourn.P50, r.Sojourn.P95, r.Sojourn.P99)
	}
	if r.Wait.Count > 0 {
		fmt.Fprintf(w, "Wait mean/p95        : %.4f / %.4f\n", r.Wait.Mean, r.Wait.P95)
	}
	names := make([]string, 0, len(r.Utilization))
	for name := range r.Utilization {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "Utilization %-8s : %.2f%%\n", name, 100*r.Utilization[name])
	}
}

// WriteJSON writes the end-of-run summary as indented JSON.
func (m *Metrics) WriteJSON(w io.Writer, clock float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.Report(clock)); err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	return nil
}
