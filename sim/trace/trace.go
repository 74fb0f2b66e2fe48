package trace

// TraceLevel controls the verbosity of tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every router commit.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelItems captures router commits plus item creation and departure.
	TraceLevelItems TraceLevel = "items"
)

// traceLevelRank orders levels by verbosity.
var traceLevelRank = map[TraceLevel]int{
	"":                  0, // empty defaults to none
	TraceLevelNone:      0,
	TraceLevelDecisions: 1,
	TraceLevelItems:     2,
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	_, ok := traceLevelRank[TraceLevel(level)]
	return ok
}

// Includes reports whether records of level other are collected at level l.
func (l TraceLevel) Includes(other TraceLevel) bool {
	return traceLevelRank[l] >= traceLevelRank[other] && traceLevelRank[other] > 0
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a simulation.
type SimulationTrace struct {
	Config   TraceConfig
	Routings []RoutingRecord
	Items    []ItemRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Routings: make([]RoutingRecord, 0),
		Items:    make([]ItemRecord, 0),
	}
}

// RecordRouting appends a router commit record.
func (st *SimulationTrace) RecordRouting(record RoutingRecord) {
	st.Routings = append(st.Routings, record)
}

// RecordItem appends an item lifecycle record.
func (st *SimulationTrace) RecordItem(record ItemRecord) {
	st.Items = append(st.Items, record)
}
