package risk

import (
	"time"

	"github.com/google/uuid"
)

// SuicideResponses carries the answers to the suicide elicitation items.
// Required booleans are pointers so an unanswered item is distinguishable
// from a "no" and can be rejected instead of scored as absent risk. List
// fields must be non-nil; an empty list means "asked, none reported".
type SuicideResponses struct {
	IdeationPresent    *bool    `json:"ideation_present"`
	IdeationIntensity  int      `json:"ideation_intensity"` // 0-10 self report
	PlanPresent        *bool    `json:"plan_present"`
	PlanSpecificity    *string  `json:"plan_specificity,omitempty"` // vague, specific, detailed
	PlanLethality      *string  `json:"plan_lethality,omitempty"`   // low, moderate, high, lethal
	IntentPresent      *bool    `json:"intent_present"`
	IntentLevel        *string  `json:"intent_level,omitempty"` // passive, ambivalent, strong, definite
	MeansAccess        *bool    `json:"means_access"`
	PreviousAttempts   []string `json:"previous_attempts"`
	RehearsalBehaviors *bool    `json:"rehearsal_behaviors"`
	RiskFactors        []string `json:"risk_factors,omitempty"`
	ProtectiveFactors  []string `json:"protective_factors"`
}

// Validate reports every missing required item at once so the assessor can
// be re-run after a single round of completion.
func (r *SuicideResponses) Validate() error {
	var missing []string
	if r.IdeationPresent == nil {
		missing = append(missing, "ideation_present")
	}
	if r.PlanPresent == nil {
		missing = append(missing, "plan_present")
	}
	if r.IntentPresent == nil {
		missing = append(missing, "intent_present")
	}
	if r.MeansAccess == nil {
		missing = append(missing, "means_access")
	}
	if r.RehearsalBehaviors == nil {
		missing = append(missing, "rehearsal_behaviors")
	}
	if r.PreviousAttempts == nil {
		missing = append(missing, "previous_attempts")
	}
	if r.ProtectiveFactors == nil {
		missing = append(missing, "protective_factors")
	}
	if len(missing) > 0 {
		return &IncompleteResponsesError{RiskType: TypeSuicide, Missing: missing}
	}
	return nil
}

func isDetailed(s *string) bool {
	return s != nil && (*s == "detailed" || *s == "specific")
}

func isHighLethality(s *string) bool {
	return s != nil && (*s == "high" || *s == "lethal")
}

func isStrongIntent(s *string) bool {
	return s != nil && (*s == "strong" || *s == "definite")
}

// scoreSuicide computes the raw and protective-adjusted scores. The offset
// forgives the first two protective factors; the adjusted score never goes
// below zero.
func scoreSuicide(r *SuicideResponses) (raw, adjusted int) {
	if *r.IdeationPresent {
		raw += 2
		if r.IdeationIntensity >= 7 {
			raw += 2
		}
	}
	if *r.PlanPresent {
		raw += 3
		if isDetailed(r.PlanSpecificity) {
			raw += 2
		}
		if isHighLethality(r.PlanLethality) {
			raw += 2
		}
	}
	if *r.IntentPresent {
		raw += 3
		if isStrongIntent(r.IntentLevel) {
			raw += 2
		}
	}
	if *r.MeansAccess {
		raw += 2
	}
	if len(r.PreviousAttempts) > 0 {
		raw += 3
		if len(r.PreviousAttempts) > 1 {
			raw++
		}
	}
	if *r.RehearsalBehaviors {
		raw += 2
	}

	offset := len(r.ProtectiveFactors) - 2
	if offset < 0 {
		offset = 0
	}
	adjusted = raw - offset
	if adjusted < 0 {
		adjusted = 0
	}
	return raw, adjusted
}

func suicideLevel(score int) Level {
	switch {
	case score >= 12:
		return LevelImminent
	case score >= 9:
		return LevelHigh
	case score >= 6:
		return LevelModerate
	case score >= 3:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// AssessSuicide scores a complete suicide response set. The returned record
// is final; corrections require a new assessment.
func AssessSuicide(patientID, sessionID, assessorID uuid.UUID, at time.Time, r SuicideResponses) (*SuicideAssessment, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	raw, adjusted := scoreSuicide(&r)
	level := suicideLevel(adjusted)

	a := &SuicideAssessment{
		PatientID:              patientID,
		SessionID:              sessionID,
		AssessorID:             assessorID,
		AssessedAt:             at,
		IdeationPresent:        *r.IdeationPresent,
		IdeationIntensity:      r.IdeationIntensity,
		PlanPresent:            *r.PlanPresent,
		PlanSpecificity:        r.PlanSpecificity,
		PlanLethality:          r.PlanLethality,
		IntentPresent:          *r.IntentPresent,
		IntentLevel:            r.IntentLevel,
		MeansAccess:            *r.MeansAccess,
		PreviousAttempts:       nonNil(r.PreviousAttempts),
		RehearsalBehaviors:     *r.RehearsalBehaviors,
		RiskFactors:            nonNil(r.RiskFactors),
		ProtectiveFactors:      nonNil(r.ProtectiveFactors),
		RawScore:               raw,
		AdjustedScore:          adjusted,
		RiskLevel:              level,
		ImmediateInterventions: interventionsFor(suicideInterventions, level),
		SafetyPlanCreated:      level >= LevelModerate,
	}
	return a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
