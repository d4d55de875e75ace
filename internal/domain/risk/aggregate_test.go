package risk

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func highSuicideAssessment(t *testing.T) *SuicideAssessment {
	t.Helper()
	r := baselineSuicideResponses()
	r.IdeationPresent = boolPtr(true)
	r.IdeationIntensity = 8
	r.PlanPresent = boolPtr(true)
	r.PlanSpecificity = strPtr("detailed")
	r.PlanLethality = strPtr("high")
	a := mustAssessSuicide(t, r)
	a.ID = uuid.New()
	if a.RiskLevel != LevelHigh {
		t.Fatalf("fixture level = %s, want high", a.RiskLevel)
	}
	return a
}

func TestAggregate_HighSuicideOnly(t *testing.T) {
	suicide := highSuicideAssessment(t)
	in := AggregateInput{
		PatientID:  suicide.PatientID,
		SessionID:  suicide.SessionID,
		AssessorID: suicide.AssessorID,
		Suicide:    suicide,
	}

	a := Aggregate(time.Now(), in)
	if a.GlobalRiskLevel != LevelHigh {
		t.Errorf("global level = %s, want high", a.GlobalRiskLevel)
	}
	if a.InterventionLevel != InterventionPartialHospitalization {
		t.Errorf("intervention level = %s, want partial_hospitalization", a.InterventionLevel)
	}
	if a.FollowUpSchedule != "daily for one week, then every 2–3 days" {
		t.Errorf("follow-up = %q", a.FollowUpSchedule)
	}
	if len(a.RiskProfile) != 1 {
		t.Errorf("profile = %v, want suicide only", a.RiskProfile)
	}
	if a.SuicideAssessmentID == nil || *a.SuicideAssessmentID != suicide.ID {
		t.Error("suicide assessment id not carried into wrapper")
	}
	if a.SelfHarmAssessmentID != nil || a.ViolenceAssessmentID != nil {
		t.Error("absent assessments must not be referenced")
	}
}

func TestAggregate_GlobalIsMaxOfProfile(t *testing.T) {
	suicide := highSuicideAssessment(t)

	shr := baselineSelfHarmResponses()
	shr.CurrentUrges = boolPtr(true)
	selfHarm := mustAssessSelfHarm(t, shr)
	selfHarm.ID = uuid.New()

	substance := &SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true}

	a := Aggregate(time.Now(), AggregateInput{
		PatientID:  uuid.New(),
		SessionID:  uuid.New(),
		AssessorID: uuid.New(),
		Suicide:    suicide,
		SelfHarm:   selfHarm,
		Substance:  substance,
	})

	want := LevelMinimal
	for _, l := range a.RiskProfile {
		if l > want {
			want = l
		}
	}
	if a.GlobalRiskLevel != want {
		t.Errorf("global level = %s, max of profile = %s", a.GlobalRiskLevel, want)
	}
	if a.GlobalRiskLevel != LevelHigh {
		t.Errorf("global level = %s, want high", a.GlobalRiskLevel)
	}
}

func TestAggregate_EmptyProfileIsMinimal(t *testing.T) {
	a := Aggregate(time.Now(), AggregateInput{
		PatientID:  uuid.New(),
		SessionID:  uuid.New(),
		AssessorID: uuid.New(),
	})
	if a.GlobalRiskLevel != LevelMinimal {
		t.Errorf("global level = %s, want minimal", a.GlobalRiskLevel)
	}
	if len(a.RiskProfile) != 0 {
		t.Errorf("profile = %v, want empty", a.RiskProfile)
	}
	if a.InterventionLevel != InterventionOutpatient {
		t.Errorf("intervention level = %s, want outpatient", a.InterventionLevel)
	}
	if a.FollowUpSchedule != "weekly initially, then biweekly" {
		t.Errorf("follow-up = %q", a.FollowUpSchedule)
	}
}

func TestAggregate_RecommendationOrder(t *testing.T) {
	suicide := highSuicideAssessment(t)

	vr := baselineViolenceResponses()
	vr.HomicidalIdeation = boolPtr(true)
	vr.SpecificTargets = []string{"coworker"}
	vr.ThreatSpecificity = strPtr("detailed")
	vr.WeaponAccess = boolPtr(true)
	violence := mustAssessViolence(t, vr)
	violence.ID = uuid.New()
	if !violence.DutyToWarnTriggered {
		t.Fatal("fixture should trigger duty to warn")
	}

	a := Aggregate(time.Now(), AggregateInput{
		PatientID:  uuid.New(),
		SessionID:  uuid.New(),
		AssessorID: uuid.New(),
		Suicide:    suicide,
		Violence:   violence,
		Substance:  &SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true},
	})

	if len(a.Recommendations) < 4 {
		t.Fatalf("recommendations = %v", a.Recommendations)
	}
	// Global guidance first, then suicide, then violence, then substance.
	if a.Recommendations[0] != globalGuidance[LevelHigh] {
		t.Errorf("first recommendation = %q, want global guidance", a.Recommendations[0])
	}
	var suicideIdx, warnIdx, substanceIdx int = -1, -1, -1
	for i, r := range a.Recommendations {
		switch {
		case strings.Contains(r, "suicide safety plan"):
			suicideIdx = i
		case strings.Contains(r, "duty-to-warn"):
			warnIdx = i
		case strings.Contains(r, "substance use disorder"):
			substanceIdx = i
		}
	}
	if suicideIdx == -1 || warnIdx == -1 || substanceIdx == -1 {
		t.Fatalf("missing expected recommendations: %v", a.Recommendations)
	}
	if !(suicideIdx < warnIdx && warnIdx < substanceIdx) {
		t.Errorf("recommendation order wrong: suicide=%d warn=%d substance=%d", suicideIdx, warnIdx, substanceIdx)
	}
}

func TestAggregate_SummaryIsDeterministic(t *testing.T) {
	suicide := highSuicideAssessment(t)
	at := time.Now()
	in := AggregateInput{
		PatientID:  uuid.New(),
		SessionID:  uuid.New(),
		AssessorID: uuid.New(),
		Suicide:    suicide,
		Psychosis:  &PsychosisIndicators{Hallucinations: true, Delusions: true},
	}

	first := Aggregate(at, in)
	second := Aggregate(at, in)
	if first.ClinicalSummary != second.ClinicalSummary {
		t.Errorf("summary not reproducible:\n%q\n%q", first.ClinicalSummary, second.ClinicalSummary)
	}
	if !strings.Contains(first.ClinicalSummary, "global risk level high") {
		t.Errorf("summary = %q", first.ClinicalSummary)
	}
}

func TestInterventionLevelFor(t *testing.T) {
	cases := map[Level]string{
		LevelImminent: InterventionInpatient,
		LevelHigh:     InterventionPartialHospitalization,
		LevelModerate: InterventionIntensiveOutpatient,
		LevelLow:      InterventionOutpatient,
		LevelMinimal:  InterventionOutpatient,
	}
	for l, want := range cases {
		if got := InterventionLevelFor(l); got != want {
			t.Errorf("InterventionLevelFor(%s) = %s, want %s", l, got, want)
		}
	}
}

func TestFollowUpScheduleFor(t *testing.T) {
	cases := map[Level]string{
		LevelImminent: "continuous",
		LevelHigh:     "daily for one week, then every 2–3 days",
		LevelModerate: "every 2–3 days for one week, then weekly",
		LevelLow:      "weekly initially, then biweekly",
		LevelMinimal:  "weekly initially, then biweekly",
	}
	for l, want := range cases {
		if got := FollowUpScheduleFor(l); got != want {
			t.Errorf("FollowUpScheduleFor(%s) = %q, want %q", l, got, want)
		}
	}
}
