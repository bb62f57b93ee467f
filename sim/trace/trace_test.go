package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"decisions", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSimulationTrace_RecordsAppendInOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordScaling(ScalingRecord{Clock: 10, Action: ActionScaleUp})
	st.RecordScaling(ScalingRecord{Clock: 20, Action: ActionScaleDown})
	st.RecordAdmission(AdmissionRecord{QueryID: 7, Clock: 5})

	if len(st.Scalings) != 2 || st.Scalings[0].Clock != 10 || st.Scalings[1].Clock != 20 {
		t.Errorf("unexpected scalings: %+v", st.Scalings)
	}
	if len(st.Admissions) != 1 || st.Admissions[0].QueryID != 7 {
		t.Errorf("unexpected admissions: %+v", st.Admissions)
	}
}
