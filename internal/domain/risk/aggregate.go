package risk

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AggregateInput collects the per-type results for one assessment event.
// Absent assessments are omitted from the profile, not defaulted to minimal.
type AggregateInput struct {
	PatientID      uuid.UUID
	SessionID      uuid.UUID
	AssessorID     uuid.UUID
	Suicide        *SuicideAssessment
	SelfHarm       *SelfHarmAssessment
	Violence       *ViolenceAssessment
	Substance      *SubstanceIndicators
	Psychosis      *PsychosisIndicators
	CrisisContacts []CrisisContact
}

// InterventionLevelFor maps a global risk level to the recommended care
// setting.
func InterventionLevelFor(l Level) string {
	switch l {
	case LevelImminent:
		return InterventionInpatient
	case LevelHigh:
		return InterventionPartialHospitalization
	case LevelModerate:
		return InterventionIntensiveOutpatient
	default:
		return InterventionOutpatient
	}
}

// FollowUpScheduleFor maps a global risk level to the follow-up cadence.
func FollowUpScheduleFor(l Level) string {
	switch l {
	case LevelImminent:
		return "continuous"
	case LevelHigh:
		return "daily for one week, then every 2–3 days"
	case LevelModerate:
		return "every 2–3 days for one week, then weekly"
	default:
		return "weekly initially, then biweekly"
	}
}

var globalGuidance = map[Level]string{
	LevelImminent: "Immediate inpatient admission is indicated; do not leave the patient unattended.",
	LevelHigh:     "Refer to partial hospitalization with daily clinical contact.",
	LevelModerate: "Enroll in intensive outpatient treatment with close follow-up.",
	LevelLow:      "Continue outpatient treatment with routine monitoring.",
	LevelMinimal:  "Continue outpatient treatment as scheduled.",
}

// profileOrder fixes the iteration order for summaries and recommendations
// so the output is reproducible from the same inputs.
var profileOrder = []Type{TypeSuicide, TypeViolence, TypeSubstance, TypeSelfHarm, TypePsychosis}

func buildRecommendations(profile map[Type]Level, global Level, violence *ViolenceAssessment) []string {
	recs := []string{globalGuidance[global]}

	if l, ok := profile[TypeSuicide]; ok && l >= LevelModerate {
		recs = append(recs,
			"Complete a suicide safety plan and review it with the patient before discharge.",
			"Counsel the patient and family on restricting access to lethal means.")
	}
	if l, ok := profile[TypeViolence]; ok {
		if violence != nil && violence.DutyToWarnTriggered {
			recs = append(recs, "Carry out duty-to-warn procedures: notify the identified target and law enforcement per statute.")
		}
		if l >= LevelModerate {
			recs = append(recs, "Develop a violence de-escalation plan and counsel on weapon removal.")
		}
	}
	if l, ok := profile[TypeSubstance]; ok && l >= LevelModerate {
		recs = append(recs, "Refer for substance use disorder treatment.")
	}
	if l, ok := profile[TypeSelfHarm]; ok && l >= LevelModerate {
		recs = append(recs, "Teach substitute coping skills for self-harm urges and schedule skills follow-up.")
	}
	if l, ok := profile[TypePsychosis]; ok && l >= LevelModerate {
		recs = append(recs, "Arrange psychiatric evaluation for psychotic symptoms and medication review.")
	}
	return recs
}

func buildSummary(profile map[Type]Level, global Level, interventionLevel, followUp string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comprehensive risk assessment: global risk level %s.", global)
	if len(profile) == 0 {
		b.WriteString(" No risk domains were assessed.")
	} else {
		b.WriteString(" Assessed domains:")
		first := true
		for _, t := range profileOrder {
			l, ok := profile[t]
			if !ok {
				continue
			}
			if first {
				fmt.Fprintf(&b, " %s %s", t, l)
				first = false
			} else {
				fmt.Fprintf(&b, ", %s %s", t, l)
			}
		}
		b.WriteString(".")
	}
	fmt.Fprintf(&b, " Recommended intervention level: %s. Follow-up schedule: %s.",
		interventionLevel, followUp)
	return b.String()
}

// Aggregate merges the supplied per-type results into a comprehensive
// assessment. The global level is always the maximum of the profile;
// recomputing one without the other is a defect.
func Aggregate(at time.Time, in AggregateInput) *ComprehensiveAssessment {
	profile := make(map[Type]Level)
	var suicideID, selfHarmID, violenceID *uuid.UUID

	if in.Suicide != nil {
		profile[TypeSuicide] = in.Suicide.RiskLevel
		id := in.Suicide.ID
		suicideID = &id
	}
	if in.SelfHarm != nil {
		profile[TypeSelfHarm] = in.SelfHarm.RiskLevel
		id := in.SelfHarm.ID
		selfHarmID = &id
	}
	if in.Violence != nil {
		profile[TypeViolence] = in.Violence.RiskLevel
		id := in.Violence.ID
		violenceID = &id
	}
	if in.Substance != nil {
		profile[TypeSubstance] = EvaluateSubstance(*in.Substance)
	}
	if in.Psychosis != nil {
		profile[TypePsychosis] = EvaluatePsychosis(*in.Psychosis)
	}

	global := LevelMinimal
	for _, l := range profile {
		if l > global {
			global = l
		}
	}

	interventionLevel := InterventionLevelFor(global)
	followUp := FollowUpScheduleFor(global)

	contacts := in.CrisisContacts
	if contacts == nil {
		contacts = []CrisisContact{}
	}

	return &ComprehensiveAssessment{
		PatientID:            in.PatientID,
		SessionID:            in.SessionID,
		AssessorID:           in.AssessorID,
		AssessedAt:           at,
		SuicideAssessmentID:  suicideID,
		SelfHarmAssessmentID: selfHarmID,
		ViolenceAssessmentID: violenceID,
		RiskProfile:          profile,
		GlobalRiskLevel:      global,
		InterventionLevel:    interventionLevel,
		FollowUpSchedule:     followUp,
		CrisisContacts:       contacts,
		ClinicalSummary:      buildSummary(profile, global, interventionLevel, followUp),
		Recommendations:      buildRecommendations(profile, global, in.Violence),
	}
}
