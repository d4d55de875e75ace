package workflow

import (
	"encoding/json"
	"testing"
)

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{PhaseScreening, PhaseDetailedAssessment},
		{PhaseDetailedAssessment, PhaseSafetyPlanning},
		{PhaseSafetyPlanning, PhaseIntervention},
		{PhaseIntervention, PhaseMonitoring},
		{PhaseMonitoring, PhaseFollowUp},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Phase }{
		{PhaseScreening, PhaseSafetyPlanning},
		{PhaseScreening, PhaseFollowUp},
		{PhaseDetailedAssessment, PhaseScreening},
		{PhaseSafetyPlanning, PhaseMonitoring},
		{PhaseFollowUp, PhaseScreening},
		{PhaseFollowUp, PhaseFollowUp},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestPhaseNextTerminal(t *testing.T) {
	if _, err := PhaseFollowUp.Next(); err == nil {
		t.Error("expected follow_up to have no successor")
	}
	next, err := PhaseMonitoring.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != PhaseFollowUp {
		t.Errorf("expected follow_up, got %s", next)
	}
}

func TestPhaseJSONRoundTrip(t *testing.T) {
	for p, name := range phaseNames {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if string(data) != `"`+name+`"` {
			t.Errorf("expected %q, got %s", name, data)
		}
		var back Phase
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", name, err)
		}
		if back != p {
			t.Errorf("round trip changed %s to %s", p, back)
		}
	}

	var p Phase
	if err := json.Unmarshal([]byte(`"triage"`), &p); err == nil {
		t.Error("expected unknown phase to be rejected")
	}
}
