package risk

import (
	"time"

	"github.com/google/uuid"
)

// SelfHarmResponses carries the answers to the self-harm elicitation items.
type SelfHarmResponses struct {
	CurrentUrges         *bool    `json:"current_urges"`
	UrgeIntensity        int      `json:"urge_intensity"` // 0-10 self report
	MethodsUsed          []string `json:"methods_used"`
	Frequency            *string  `json:"frequency,omitempty"` // daily, multiple times daily, weekly, multiple times weekly, monthly
	MedicalComplications []string `json:"medical_complications"`
	SuicideRiskLinked    *bool    `json:"suicide_risk_linked"`
	RiskFactors          []string `json:"risk_factors,omitempty"`
	ProtectiveFactors    []string `json:"protective_factors"`
}

func (r *SelfHarmResponses) Validate() error {
	var missing []string
	if r.CurrentUrges == nil {
		missing = append(missing, "current_urges")
	}
	if r.SuicideRiskLinked == nil {
		missing = append(missing, "suicide_risk_linked")
	}
	if r.MethodsUsed == nil {
		missing = append(missing, "methods_used")
	}
	if r.MedicalComplications == nil {
		missing = append(missing, "medical_complications")
	}
	if r.ProtectiveFactors == nil {
		missing = append(missing, "protective_factors")
	}
	if len(missing) > 0 {
		return &IncompleteResponsesError{RiskType: TypeSelfHarm, Missing: missing}
	}
	return nil
}

// Methods with higher tissue-damage potential carry an extra point.
var severeMethods = map[string]bool{
	"cutting": true, "burning": true, "hitting": true,
}

func scoreSelfHarm(r *SelfHarmResponses) (raw, adjusted int) {
	if *r.CurrentUrges {
		raw += 2
		if r.UrgeIntensity >= 7 {
			raw += 2
		}
	}
	if len(r.MethodsUsed) > 0 {
		raw++
		for _, m := range r.MethodsUsed {
			if severeMethods[m] {
				raw++
				break
			}
		}
	}
	if r.Frequency != nil {
		switch *r.Frequency {
		case "daily", "multiple times daily":
			raw += 2
		case "weekly", "multiple times weekly":
			raw++
		}
	}
	if len(r.MedicalComplications) > 0 {
		raw += 2
	}
	if *r.SuicideRiskLinked {
		raw += 3
	}

	adjusted = raw - len(r.ProtectiveFactors)
	if adjusted < 0 {
		adjusted = 0
	}
	return raw, adjusted
}

// selfHarmLevel has no imminent tier; escalation past high is the suicide
// assessor's job via the suicide-linkage factor.
func selfHarmLevel(score int) Level {
	switch {
	case score >= 8:
		return LevelHigh
	case score >= 5:
		return LevelModerate
	case score >= 2:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// AssessSelfHarm scores a complete self-harm response set.
func AssessSelfHarm(patientID, sessionID, assessorID uuid.UUID, at time.Time, r SelfHarmResponses) (*SelfHarmAssessment, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	raw, adjusted := scoreSelfHarm(&r)
	level := selfHarmLevel(adjusted)

	a := &SelfHarmAssessment{
		PatientID:              patientID,
		SessionID:              sessionID,
		AssessorID:             assessorID,
		AssessedAt:             at,
		CurrentUrges:           *r.CurrentUrges,
		UrgeIntensity:          r.UrgeIntensity,
		MethodsUsed:            nonNil(r.MethodsUsed),
		Frequency:              r.Frequency,
		MedicalComplications:   nonNil(r.MedicalComplications),
		SuicideRiskLinked:      *r.SuicideRiskLinked,
		RiskFactors:            nonNil(r.RiskFactors),
		ProtectiveFactors:      nonNil(r.ProtectiveFactors),
		RawScore:               raw,
		AdjustedScore:          adjusted,
		RiskLevel:              level,
		ImmediateInterventions: interventionsFor(selfHarmInterventions, level),
	}
	return a, nil
}
