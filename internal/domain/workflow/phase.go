// Package workflow sequences a risk assessment through its phases: screening,
// detailed assessment, safety planning, intervention, monitoring, follow-up.
// The phase is an explicit state machine with guarded transitions; an illegal
// skip is rejected, not inferred away.
package workflow

import (
	"encoding/json"
	"fmt"
)

type Phase int

const (
	PhaseScreening Phase = iota
	PhaseDetailedAssessment
	PhaseSafetyPlanning
	PhaseIntervention
	PhaseMonitoring
	PhaseFollowUp
)

var phaseNames = map[Phase]string{
	PhaseScreening:          "screening",
	PhaseDetailedAssessment: "detailed_assessment",
	PhaseSafetyPlanning:     "safety_planning",
	PhaseIntervention:       "intervention",
	PhaseMonitoring:         "monitoring",
	PhaseFollowUp:           "follow_up",
}

var phaseValues = map[string]Phase{
	"screening":           PhaseScreening,
	"detailed_assessment": PhaseDetailedAssessment,
	"safety_planning":     PhaseSafetyPlanning,
	"intervention":        PhaseIntervention,
	"monitoring":          PhaseMonitoring,
	"follow_up":           PhaseFollowUp,
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func ParsePhase(s string) (Phase, error) {
	p, ok := phaseValues[s]
	if !ok {
		return PhaseScreening, fmt.Errorf("unknown workflow phase: %q", s)
	}
	return p, nil
}

func (p Phase) MarshalJSON() ([]byte, error) {
	s, ok := phaseNames[p]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid phase %d", int(p))
	}
	return json.Marshal(s)
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Each phase advances to exactly one successor. FollowUp is terminal; the
// other exit is early completion at DetailedAssessment when no elevated risk
// is found, which ends the workflow without a phase change.
var transitions = map[Phase]Phase{
	PhaseScreening:          PhaseDetailedAssessment,
	PhaseDetailedAssessment: PhaseSafetyPlanning,
	PhaseSafetyPlanning:     PhaseIntervention,
	PhaseIntervention:       PhaseMonitoring,
	PhaseMonitoring:         PhaseFollowUp,
}

// CanTransition reports whether from may advance directly to to.
func CanTransition(from, to Phase) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// Next returns the successor phase, or an error at the terminal phase.
func (p Phase) Next() (Phase, error) {
	next, ok := transitions[p]
	if !ok {
		return p, fmt.Errorf("phase %s has no successor", p)
	}
	return next, nil
}
