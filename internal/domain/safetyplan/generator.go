package safetyplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

// Review cadence: plans that address suicide or violence come up for review
// sooner than others.
const (
	urgentReviewAfter  = 30 * 24 * time.Hour
	routineReviewAfter = 90 * 24 * time.Hour
)

var warningSignsByType = map[risk.Type][]string{
	risk.TypeSuicide: {
		"Thoughts of death or of ending my life",
		"Feeling like a burden to the people around me",
		"Withdrawing from family and friends",
		"Giving away possessions or saying goodbyes",
	},
	risk.TypeSelfHarm: {
		"Strong urges to hurt myself",
		"Feeling numb or needing to feel something",
		"Seeking out or keeping items I have used to hurt myself",
	},
	risk.TypeViolence: {
		"Anger that keeps building instead of passing",
		"Thoughts about hurting a specific person",
		"Clenched fists, pacing, or feeling about to explode",
	},
}

var environmentalStepsByType = map[risk.Type][]string{
	risk.TypeSuicide: {
		"Remove or lock up firearms and ammunition",
		"Limit the quantity of medication kept at home",
		"Ask a trusted person to hold anything I could use to hurt myself",
	},
	risk.TypeSelfHarm: {
		"Remove or secure sharp objects and lighters",
		"Keep first-aid supplies accessible",
	},
	risk.TypeViolence: {
		"Remove weapons from the home",
		"Plan to leave the situation when warning signs start",
		"Avoid alcohol and drugs when angry",
	},
}

var commonCopingStrategies = []string{
	"Use slow breathing for five minutes",
	"Hold ice or take a cold shower",
	"Go for a walk or do intense exercise",
	"Call or text a supportive person",
	"Write down what I am feeling",
	"Use a grounding exercise: five things I can see, four I can hear, three I can touch",
}

// Generator derives plans from fixed templates plus the crisis resource
// numbers configured for the deployment.
type Generator struct {
	hotline   string
	textLine  string
	emergency string
}

func NewGenerator(hotline, textLine, emergency string) *Generator {
	return &Generator{hotline: hotline, textLine: textLine, emergency: emergency}
}

// GenerateInput carries the patient-specific content supplied by the
// assessing clinician.
type GenerateInput struct {
	PatientID            uuid.UUID
	CreatedByID          uuid.UUID
	RiskTypes            []risk.Type
	SocialContacts       []Contact
	ProfessionalContacts []Contact
	ReasonsForLiving     []string
	PatientCommitment    *string
}

// Generate builds an active plan. The same input always yields the same
// warning-sign and coping content. Professional contacts are always seeded
// with the crisis triple before any caller-supplied entries.
func (g *Generator) Generate(at time.Time, in GenerateInput) *SafetyPlan {
	warningSigns := []string{}
	envSteps := []string{}
	urgent := false
	for _, t := range in.RiskTypes {
		warningSigns = append(warningSigns, warningSignsByType[t]...)
		envSteps = append(envSteps, environmentalStepsByType[t]...)
		if t == risk.TypeSuicide || t == risk.TypeViolence {
			urgent = true
		}
	}

	coping := make([]string, len(commonCopingStrategies))
	copy(coping, commonCopingStrategies)

	professionals := []Contact{
		{Name: "Suicide & Crisis Lifeline", Role: "crisis hotline", Phone: g.hotline},
		{Name: "Crisis Text Line", Role: "crisis text line", Phone: g.textLine},
		{Name: "Emergency services", Role: "emergency", Phone: g.emergency},
	}
	professionals = append(professionals, in.ProfessionalContacts...)

	reviewAfter := routineReviewAfter
	if urgent {
		reviewAfter = urgentReviewAfter
	}

	riskTypes := in.RiskTypes
	if riskTypes == nil {
		riskTypes = []risk.Type{}
	}
	social := in.SocialContacts
	if social == nil {
		social = []Contact{}
	}
	reasons := in.ReasonsForLiving
	if reasons == nil {
		reasons = []string{}
	}

	return &SafetyPlan{
		PatientID:                in.PatientID,
		CreatedByID:              in.CreatedByID,
		Status:                   StatusActive,
		RiskTypesAddressed:       riskTypes,
		WarningSigns:             warningSigns,
		InternalCopingStrategies: coping,
		SocialContacts:           social,
		ProfessionalContacts:     professionals,
		EnvironmentalSafetySteps: envSteps,
		ReasonsForLiving:         reasons,
		PatientCommitment:        in.PatientCommitment,
		ReviewDate:               at.Add(reviewAfter),
	}
}
