package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func newRiskService() *risk.Service {
	return risk.NewService(
		risk.NewSuicideRepoPG(globalDB.Pool),
		risk.NewSelfHarmRepoPG(globalDB.Pool),
		risk.NewViolenceRepoPG(globalDB.Pool),
		risk.NewComprehensiveRepoPG(globalDB.Pool),
	)
}

func highRiskResponses() risk.SuicideResponses {
	return risk.SuicideResponses{
		IdeationPresent:    boolPtr(true),
		IdeationIntensity:  8,
		PlanPresent:        boolPtr(true),
		PlanSpecificity:    strPtr("detailed"),
		PlanLethality:      strPtr("high"),
		IntentPresent:      boolPtr(true),
		IntentLevel:        strPtr("strong"),
		MeansAccess:        boolPtr(true),
		PreviousAttempts:   []string{"overdose 2023"},
		RehearsalBehaviors: boolPtr(false),
		RiskFactors:        []string{"recent job loss"},
		ProtectiveFactors:  []string{},
	}
}

func TestSuicideAssessmentPersistence(t *testing.T) {
	ctx := context.Background()
	svc := newRiskService()
	patientID, sessionID, assessorID := uuid.New(), uuid.New(), uuid.New()

	created, err := svc.AssessSuicide(ctx, patientID, sessionID, assessorID, highRiskResponses())
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected assessment id")
	}

	got, err := svc.GetSuicideAssessment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RiskLevel != created.RiskLevel {
		t.Errorf("level changed across round trip: %s vs %s", got.RiskLevel, created.RiskLevel)
	}
	if got.RawScore != created.RawScore || got.AdjustedScore != created.AdjustedScore {
		t.Errorf("scores changed across round trip")
	}
	if got.PlanSpecificity == nil || *got.PlanSpecificity != "detailed" {
		t.Error("plan specificity lost")
	}
	// An empty list must round-trip as empty, not nil: it records that the
	// question was asked and nothing was reported.
	if got.ProtectiveFactors == nil || len(got.ProtectiveFactors) != 0 {
		t.Errorf("expected empty protective factors, got %v", got.ProtectiveFactors)
	}
	if len(got.PreviousAttempts) != 1 || got.PreviousAttempts[0] != "overdose 2023" {
		t.Errorf("previous attempts lost: %v", got.PreviousAttempts)
	}
}

func TestSuicideAssessmentsAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	svc := newRiskService()
	patientID, sessionID, assessorID := uuid.New(), uuid.New(), uuid.New()

	first, err := svc.AssessSuicide(ctx, patientID, sessionID, assessorID, highRiskResponses())
	if err != nil {
		t.Fatalf("first assess: %v", err)
	}

	calmer := highRiskResponses()
	calmer.PlanPresent = boolPtr(false)
	calmer.PlanSpecificity = nil
	calmer.PlanLethality = nil
	second, err := svc.AssessSuicide(ctx, patientID, sessionID, assessorID, calmer)
	if err != nil {
		t.Fatalf("second assess: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("reassessment must create a new record")
	}

	items, total, err := svc.ListSuicideAssessmentsByPatient(ctx, patientID, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 assessments, got total=%d len=%d", total, len(items))
	}

	unchanged, err := svc.GetSuicideAssessment(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if unchanged.RawScore != first.RawScore || unchanged.RiskLevel != first.RiskLevel {
		t.Error("earlier assessment was altered by reassessment")
	}
}

func TestComprehensiveAssessmentLinksAndProfile(t *testing.T) {
	ctx := context.Background()
	svc := newRiskService()
	patientID, sessionID, assessorID := uuid.New(), uuid.New(), uuid.New()

	suicide, err := svc.AssessSuicide(ctx, patientID, sessionID, assessorID, highRiskResponses())
	if err != nil {
		t.Fatalf("assess suicide: %v", err)
	}

	comp, err := svc.Aggregate(ctx, risk.AggregateInput{
		PatientID:  patientID,
		SessionID:  sessionID,
		AssessorID: assessorID,
		Suicide:    suicide,
		Substance:  &risk.SubstanceIndicators{DailyUse: true, WithdrawalSymptoms: true},
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	got, err := svc.GetComprehensiveAssessment(ctx, comp.ID)
	if err != nil {
		t.Fatalf("get comprehensive: %v", err)
	}
	if got.SuicideAssessmentID == nil || *got.SuicideAssessmentID != suicide.ID {
		t.Error("suicide assessment link lost")
	}
	if got.GlobalRiskLevel != comp.GlobalRiskLevel {
		t.Errorf("global level changed: %s vs %s", got.GlobalRiskLevel, comp.GlobalRiskLevel)
	}
	if got.RiskProfile[risk.TypeSuicide] != suicide.RiskLevel {
		t.Errorf("risk profile lost suicide level: %v", got.RiskProfile)
	}
	if got.FollowUpSchedule != comp.FollowUpSchedule {
		t.Errorf("follow-up schedule changed: %q vs %q", got.FollowUpSchedule, comp.FollowUpSchedule)
	}

	latest, err := svc.LatestComprehensiveByPatient(ctx, patientID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != comp.ID {
		t.Error("latest did not return the new assessment")
	}
}

func TestLatestComprehensiveWithoutAssessments(t *testing.T) {
	svc := newRiskService()
	latest, err := svc.LatestComprehensiveByPatient(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != nil {
		t.Error("expected nil for patient without assessments")
	}
}
