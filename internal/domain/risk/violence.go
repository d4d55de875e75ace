package risk

import (
	"time"

	"github.com/google/uuid"
)

const recentViolenceWindow = 365 * 24 * time.Hour

// ViolenceResponses carries the answers to the violence elicitation items.
type ViolenceResponses struct {
	HomicidalIdeation     *bool              `json:"homicidal_ideation"`
	SpecificTargets       []string           `json:"specific_targets"`
	ThreatSpecificity     *string            `json:"threat_specificity,omitempty"` // vague, specific, detailed
	ViolenceHistory       []ViolenceIncident `json:"violence_history"`
	WeaponAccess          *bool              `json:"weapon_access"`
	WeaponTypes           []string           `json:"weapon_types,omitempty"`
	ImpulseControl        *string            `json:"impulse_control,omitempty"` // good, fair, poor, very poor
	SubstanceUse          *bool              `json:"substance_use"`
	ParanoidIdeation      *bool              `json:"paranoid_ideation"`
	CommandHallucinations *bool              `json:"command_hallucinations"`
	RiskFactors           []string           `json:"risk_factors,omitempty"`
	ProtectiveFactors     []string           `json:"protective_factors"`
}

func (r *ViolenceResponses) Validate() error {
	var missing []string
	if r.HomicidalIdeation == nil {
		missing = append(missing, "homicidal_ideation")
	}
	if r.SpecificTargets == nil {
		missing = append(missing, "specific_targets")
	}
	if r.ViolenceHistory == nil {
		missing = append(missing, "violence_history")
	}
	if r.WeaponAccess == nil {
		missing = append(missing, "weapon_access")
	}
	if r.SubstanceUse == nil {
		missing = append(missing, "substance_use")
	}
	if r.ParanoidIdeation == nil {
		missing = append(missing, "paranoid_ideation")
	}
	if r.CommandHallucinations == nil {
		missing = append(missing, "command_hallucinations")
	}
	if r.ProtectiveFactors == nil {
		missing = append(missing, "protective_factors")
	}
	if len(missing) > 0 {
		return &IncompleteResponsesError{RiskType: TypeViolence, Missing: missing}
	}
	return nil
}

func isPoorImpulseControl(s *string) bool {
	return s != nil && (*s == "poor" || *s == "very poor")
}

func scoreViolence(r *ViolenceResponses, at time.Time) (raw, adjusted int) {
	if *r.HomicidalIdeation {
		raw += 3
		if len(r.SpecificTargets) > 0 {
			raw += 2
		}
		if isDetailed(r.ThreatSpecificity) {
			raw += 2
		}
	}
	if len(r.ViolenceHistory) > 0 {
		raw += 2
		for _, i := range r.ViolenceHistory {
			if at.Sub(i.OccurredAt) <= recentViolenceWindow {
				raw += 2
				break
			}
		}
	}
	if *r.WeaponAccess {
		raw += 2
		for _, w := range r.WeaponTypes {
			if w == "firearm" {
				raw++
				break
			}
		}
	}
	if isPoorImpulseControl(r.ImpulseControl) {
		raw += 2
	}
	if *r.SubstanceUse {
		raw++
	}
	if *r.ParanoidIdeation {
		raw += 2
	}
	if *r.CommandHallucinations {
		raw += 3
	}

	adjusted = raw - len(r.ProtectiveFactors)
	if adjusted < 0 {
		adjusted = 0
	}
	return raw, adjusted
}

func violenceLevel(score int) Level {
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

// dutyToWarn is a hard gate evaluated after the level is known, not a score
// contributor. It requires homicidal ideation, a named target, a detailed or
// specific threat, and a level of high or above. A detailed threat at a lower
// level does not trigger it; the level gate dominates.
func dutyToWarn(r *ViolenceResponses, level Level) bool {
	return *r.HomicidalIdeation &&
		len(r.SpecificTargets) > 0 &&
		isDetailed(r.ThreatSpecificity) &&
		level >= LevelHigh
}

// AssessViolence scores a complete violence response set. The assessment
// timestamp anchors the 365-day recency window for the violence history.
func AssessViolence(patientID, sessionID, assessorID uuid.UUID, at time.Time, r ViolenceResponses) (*ViolenceAssessment, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	raw, adjusted := scoreViolence(&r, at)
	level := violenceLevel(adjusted)

	history := r.ViolenceHistory
	if history == nil {
		history = []ViolenceIncident{}
	}

	a := &ViolenceAssessment{
		PatientID:              patientID,
		SessionID:              sessionID,
		AssessorID:             assessorID,
		AssessedAt:             at,
		HomicidalIdeation:      *r.HomicidalIdeation,
		SpecificTargets:        nonNil(r.SpecificTargets),
		ThreatSpecificity:      r.ThreatSpecificity,
		ViolenceHistory:        history,
		WeaponAccess:           *r.WeaponAccess,
		WeaponTypes:            nonNil(r.WeaponTypes),
		ImpulseControl:         r.ImpulseControl,
		SubstanceUse:           *r.SubstanceUse,
		ParanoidIdeation:       *r.ParanoidIdeation,
		CommandHallucinations:  *r.CommandHallucinations,
		RiskFactors:            nonNil(r.RiskFactors),
		ProtectiveFactors:      nonNil(r.ProtectiveFactors),
		RawScore:               raw,
		AdjustedScore:          adjusted,
		RiskLevel:              level,
		ImmediateInterventions: interventionsFor(violenceInterventions, level),
		DutyToWarnTriggered:    dutyToWarn(&r, level),
	}
	return a, nil
}
