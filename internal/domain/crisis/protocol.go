package crisis

import (
	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

// Protocols exist only for high and imminent. Lower levels have no bundle;
// activating one is a programming error surfaced as UnsupportedRiskLevel.

var highProtocol = CrisisProtocol{
	ImmediateActions: []string{
		"Arrange same-day psychiatric evaluation",
		"Notify the attending clinician",
		"Review and update the safety plan before the patient leaves",
		"Contact the patient's identified support person",
	},
	AuthorizationRequired: []string{
		"Attending clinician sign-off on disposition",
	},
	DocumentationRequired: []string{
		"Risk assessment findings and level",
		"Actions taken and by whom",
		"Disposition and follow-up schedule",
	},
}

var imminentProtocol = CrisisProtocol{
	ImmediateActions: []string{
		"Initiate continuous observation immediately",
		"Do not allow the patient to leave unaccompanied",
		"Arrange emergency psychiatric evaluation",
		"Remove access to any means of harm in the environment",
		"Notify the attending clinician and the crisis team",
	},
	AuthorizationRequired: []string{
		"Attending clinician sign-off on disposition",
		"Psychiatric attending approval for involuntary hold, if pursued",
	},
	DocumentationRequired: []string{
		"Risk assessment findings and level",
		"Observation start time and observer identity",
		"Actions taken and by whom",
		"Notifications made, including duty-to-warn if applicable",
		"Disposition and follow-up schedule",
	},
}

// ProtocolFor returns the action bundle for level, copying the template so
// callers cannot mutate the shared tables.
func ProtocolFor(assessmentID uuid.UUID, level risk.Level) (*CrisisProtocol, error) {
	var tmpl CrisisProtocol
	switch level {
	case risk.LevelHigh:
		tmpl = highProtocol
	case risk.LevelImminent:
		tmpl = imminentProtocol
	default:
		return nil, &risk.UnsupportedRiskLevelError{Level: level}
	}

	p := CrisisProtocol{
		AssessmentID:          assessmentID,
		RiskLevel:             level,
		ImmediateActions:      append([]string(nil), tmpl.ImmediateActions...),
		AuthorizationRequired: append([]string(nil), tmpl.AuthorizationRequired...),
		DocumentationRequired: append([]string(nil), tmpl.DocumentationRequired...),
	}
	return &p, nil
}
