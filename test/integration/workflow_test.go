package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinsafe/riskengine/internal/domain/risk"
	"github.com/clinsafe/riskengine/internal/domain/safetyplan"
	"github.com/clinsafe/riskengine/internal/domain/workflow"
	"github.com/clinsafe/riskengine/internal/platform/lock"
)

func newWorkflowService() *workflow.Service {
	return workflow.NewService(
		workflow.NewRepoPG(globalDB.Pool),
		risk.NewComprehensiveRepoPG(globalDB.Pool),
		lock.New(),
		zerolog.Nop(),
	)
}

func TestWorkflowLifecycleAgainstDatabase(t *testing.T) {
	ctx := context.Background()
	wfSvc := newWorkflowService()
	riskSvc := newRiskService()
	planSvc := newPlanService()
	patientID, sessionID, clinicianID := uuid.New(), uuid.New(), uuid.New()

	w, err := wfSvc.Start(ctx, patientID, sessionID, clinicianID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// A second start for the same session must be refused.
	if _, err := wfSvc.Start(ctx, patientID, sessionID, clinicianID); !errors.Is(err, risk.ErrAssessmentInProgress) {
		t.Fatalf("expected ErrAssessmentInProgress, got %v", err)
	}

	w, err = wfSvc.RecordScreening(ctx, w.ID, workflow.ScreeningInput{
		Concerns: []string{"patient reports wanting to end my life"},
	})
	if err != nil {
		t.Fatalf("screening: %v", err)
	}
	if w.Phase != workflow.PhaseDetailedAssessment {
		t.Fatalf("expected detailed_assessment, got %s", w.Phase)
	}

	suicide, err := riskSvc.AssessSuicide(ctx, patientID, sessionID, clinicianID, highRiskResponses())
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	comp, err := riskSvc.Aggregate(ctx, risk.AggregateInput{
		PatientID:  patientID,
		SessionID:  sessionID,
		AssessorID: clinicianID,
		Suicide:    suicide,
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	w, err = wfSvc.RecordDetailedAssessment(ctx, w.ID, comp.ID)
	if err != nil {
		t.Fatalf("detailed assessment: %v", err)
	}
	if w.Phase != workflow.PhaseSafetyPlanning {
		t.Fatalf("expected safety_planning for elevated risk, got %s", w.Phase)
	}

	plan, err := planSvc.Generate(ctx, safetyplan.GenerateInput{
		PatientID:   patientID,
		CreatedByID: clinicianID,
		RiskTypes:   []risk.Type{risk.TypeSuicide},
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	w, err = wfSvc.RecordSafetyPlan(ctx, w.ID, plan.ID)
	if err != nil {
		t.Fatalf("record plan: %v", err)
	}

	for _, want := range []workflow.Phase{workflow.PhaseMonitoring, workflow.PhaseFollowUp} {
		w, err = wfSvc.Advance(ctx, w.ID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if w.Phase != want {
			t.Fatalf("expected %s, got %s", want, w.Phase)
		}
	}

	w, err = wfSvc.Complete(ctx, w.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if w.Status != workflow.StatusCompleted || w.CompletedAt == nil {
		t.Fatal("workflow not completed")
	}

	// Once closed, the session is free for a new workflow.
	if _, err := wfSvc.Start(ctx, patientID, sessionID, clinicianID); err != nil {
		t.Fatalf("restart after completion: %v", err)
	}
}

func TestWorkflowLowRiskEndsEarly(t *testing.T) {
	ctx := context.Background()
	wfSvc := newWorkflowService()
	riskSvc := newRiskService()
	patientID, sessionID, clinicianID := uuid.New(), uuid.New(), uuid.New()

	w, err := wfSvc.Start(ctx, patientID, sessionID, clinicianID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	w, err = wfSvc.RecordScreening(ctx, w.ID, workflow.ScreeningInput{SuicidalIdeationReported: true})
	if err != nil {
		t.Fatalf("screening: %v", err)
	}

	mild := highRiskResponses()
	mild.PlanPresent = boolPtr(false)
	mild.PlanSpecificity = nil
	mild.PlanLethality = nil
	mild.IntentPresent = boolPtr(false)
	mild.IntentLevel = nil
	mild.MeansAccess = boolPtr(false)
	mild.PreviousAttempts = []string{}
	mild.IdeationIntensity = 3
	suicide, err := riskSvc.AssessSuicide(ctx, patientID, sessionID, clinicianID, mild)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	comp, err := riskSvc.Aggregate(ctx, risk.AggregateInput{
		PatientID:  patientID,
		SessionID:  sessionID,
		AssessorID: clinicianID,
		Suicide:    suicide,
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if comp.GlobalRiskLevel >= risk.LevelModerate {
		t.Fatalf("fixture too severe: %s", comp.GlobalRiskLevel)
	}

	w, err = wfSvc.RecordDetailedAssessment(ctx, w.ID, comp.ID)
	if err != nil {
		t.Fatalf("detailed assessment: %v", err)
	}
	if w.Status != workflow.StatusCompleted {
		t.Errorf("expected early completion, got status %s", w.Status)
	}
	if w.Phase != workflow.PhaseDetailedAssessment {
		t.Errorf("phase should stay at detailed_assessment, got %s", w.Phase)
	}
}
