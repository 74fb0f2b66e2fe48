package trace

import (
	"testing"
)

func TestSimulationTrace_RecordRouting_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a routing record is recorded
	st.RecordRouting(RoutingRecord{
		Router:     "dispatch",
		ItemID:     "item-7",
		Clock:      2.5,
		From:       "queue",
		To:         "core-1",
		ConsumerAt: 1,
	})

	// THEN the trace contains one routing record with correct data
	if len(st.Routings) != 1 {
		t.Fatalf("expected 1 routing, got %d", len(st.Routings))
	}
	if st.Routings[0].To != "core-1" {
		t.Errorf("expected core-1, got %s", st.Routings[0].To)
	}
	if st.Routings[0].ConsumerAt != 1 {
		t.Errorf("expected consumer index 1, got %d", st.Routings[0].ConsumerAt)
	}
}

func TestSimulationTrace_RecordItem_AppendsInOrder(t *testing.T) {
	// GIVEN a trace configured for items
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelItems})

	// WHEN creation and departure are recorded
	st.RecordItem(ItemRecord{ItemID: "item-1", Event: "created", Stage: "arrival", Clock: 1})
	st.RecordItem(ItemRecord{ItemID: "item-1", Event: "departed", Stage: "exit", Clock: 2})

	// THEN both records are kept in insertion order
	if len(st.Items) != 2 {
		t.Fatalf("expected 2 item records, got %d", len(st.Items))
	}
	if st.Items[0].Event != "created" || st.Items[1].Event != "departed" {
		t.Errorf("unexpected order: %v", st.Items)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"decisions", true},
		{"items", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.want {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestTraceLevel_Includes(t *testing.T) {
	tests := []struct {
		level TraceLevel
		other TraceLevel
		want  bool
	}{
		{TraceLevelNone, TraceLevelDecisions, false},
		{TraceLevelDecisions, TraceLevelDecisions, true},
		{TraceLevelDecisions, TraceLevelItems, false},
		{TraceLevelItems, TraceLevelDecisions, true},
		{TraceLevelItems, TraceLevelItems, true},
		{TraceLevelItems, TraceLevelNone, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.level)+"/"+string(tt.other), func(t *testing.T) {
			if got := tt.level.Includes(tt.other); got != tt.want {
				t.Errorf("%q.Includes(%q) = %v, want %v", tt.level, tt.other, got, tt.want)
			}
		})
	}
}
