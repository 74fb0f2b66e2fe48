package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	ItemsCreated       int
	ItemsDeparted      int
	UniqueTargets      int
	TargetDistribution map[string]int // stage name → count of items routed to it
	RouterDistribution map[string]int // router name → count of commits
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[string]int),
		RouterDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Routings)
	for _, r := range st.Routings {
		summary.TargetDistribution[r.To]++
		summary.RouterDistribution[r.Router]++
	}
	for _, it := range st.Items {
		switch it.Event {
		case "created":
			summary.ItemsCreated++
		case "departed":
			summary.ItemsDeparted++
		}
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
