package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/clinsafe/riskengine/internal/domain/risk"
	"github.com/clinsafe/riskengine/internal/platform/lock"
)

// Service drives workflows through their phases. Every transition is persisted
// before the updated workflow is returned; a persistence failure halts the
// transition.
type Service struct {
	workflows   Repository
	assessments risk.ComprehensiveRepository
	locks       *lock.KeyedMutex
	log         zerolog.Logger
}

func NewService(workflows Repository, assessments risk.ComprehensiveRepository, locks *lock.KeyedMutex, log zerolog.Logger) *Service {
	return &Service{workflows: workflows, assessments: assessments, locks: locks, log: log}
}

func sessionKey(patientID, sessionID uuid.UUID) string {
	return patientID.String() + ":" + sessionID.String()
}

// Start opens a new workflow at the screening phase. At most one workflow may
// be active per patient and session; a second Start fails with
// risk.ErrAssessmentInProgress.
func (s *Service) Start(ctx context.Context, patientID, sessionID, clinicianID uuid.UUID) (*Workflow, error) {
	if patientID == uuid.Nil || sessionID == uuid.Nil || clinicianID == uuid.Nil {
		return nil, fmt.Errorf("patient, session and clinician ids are required")
	}

	key := sessionKey(patientID, sessionID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.workflows.ActiveBySession(ctx, patientID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("check active workflow: %w", err)
	}
	if existing != nil {
		return nil, risk.ErrAssessmentInProgress
	}

	w := &Workflow{
		PatientID:        patientID,
		SessionID:        sessionID,
		ClinicianID:      clinicianID,
		Phase:            PhaseScreening,
		Status:           StatusActive,
		FlaggedRiskTypes: []risk.Type{},
	}
	if err := s.workflows.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}

	s.log.Info().
		Str("workflow_id", w.ID.String()).
		Str("patient_id", patientID.String()).
		Msg("assessment workflow started")
	return w, nil
}

// RecordScreening stores screening results and moves the workflow into
// detailed assessment. Screening only flags risk domains to assess; it never
// assigns a risk level. A screening that flags nothing completes the workflow
// without further phases.
func (s *Service) RecordScreening(ctx context.Context, workflowID uuid.UUID, in ScreeningInput) (*Workflow, error) {
	w, err := s.lockedWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	defer s.locks.Unlock(workflowID.String())

	if w.Phase != PhaseScreening {
		return nil, &InvalidTransitionError{From: w.Phase, To: PhaseDetailedAssessment}
	}

	w.FlaggedRiskTypes = Screen(in)
	if len(w.FlaggedRiskTypes) == 0 {
		s.complete(w)
	} else {
		w.Phase = PhaseDetailedAssessment
	}
	if err := s.workflows.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}
	return w, nil
}

// RecordDetailedAssessment links the comprehensive assessment to the workflow
// and decides the next phase from its global risk level: moderate or above
// proceeds to safety planning, lower risk completes the workflow.
func (s *Service) RecordDetailedAssessment(ctx context.Context, workflowID, assessmentID uuid.UUID) (*Workflow, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("comprehensive assessment %s not found", assessmentID)
		}
		return nil, fmt.Errorf("load comprehensive assessment: %w", err)
	}

	w, err := s.lockedWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	defer s.locks.Unlock(workflowID.String())

	if w.Phase != PhaseDetailedAssessment {
		return nil, &InvalidTransitionError{From: w.Phase, To: PhaseSafetyPlanning}
	}
	if assessment.PatientID != w.PatientID {
		return nil, fmt.Errorf("assessment belongs to a different patient")
	}

	level := assessment.GlobalRiskLevel
	w.ComprehensiveAssessmentID = &assessment.ID
	w.GlobalRiskLevel = &level
	if level >= risk.LevelModerate {
		w.Phase = PhaseSafetyPlanning
	} else {
		s.complete(w)
	}
	if err := s.workflows.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}

	s.log.Info().
		Str("workflow_id", w.ID.String()).
		Str("global_risk_level", level.String()).
		Str("phase", w.Phase.String()).
		Msg("detailed assessment recorded")
	return w, nil
}

// RecordSafetyPlan links the generated safety plan and advances the workflow
// into the intervention phase.
func (s *Service) RecordSafetyPlan(ctx context.Context, workflowID, planID uuid.UUID) (*Workflow, error) {
	if planID == uuid.Nil {
		return nil, fmt.Errorf("safety plan id is required")
	}

	w, err := s.lockedWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	defer s.locks.Unlock(workflowID.String())

	if w.Phase != PhaseSafetyPlanning {
		return nil, &InvalidTransitionError{From: w.Phase, To: PhaseIntervention}
	}

	w.SafetyPlanID = &planID
	w.Phase = PhaseIntervention
	if err := s.workflows.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}
	return w, nil
}

// Advance moves the workflow through the clinician-driven tail of the state
// machine: intervention to monitoring, monitoring to follow-up.
func (s *Service) Advance(ctx context.Context, workflowID uuid.UUID) (*Workflow, error) {
	w, err := s.lockedWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	defer s.locks.Unlock(workflowID.String())

	if w.Phase != PhaseIntervention && w.Phase != PhaseMonitoring {
		next := PhaseFollowUp
		if n, err := w.Phase.Next(); err == nil {
			next = n
		}
		return nil, &InvalidTransitionError{From: w.Phase, To: next}
	}

	next, err := w.Phase.Next()
	if err != nil {
		return nil, err
	}
	w.Phase = next
	if err := s.workflows.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}
	return w, nil
}

// Complete closes a workflow that has reached follow-up.
func (s *Service) Complete(ctx context.Context, workflowID uuid.UUID) (*Workflow, error) {
	w, err := s.lockedWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	defer s.locks.Unlock(workflowID.String())

	if w.Phase != PhaseFollowUp {
		return nil, &InvalidTransitionError{From: w.Phase, To: PhaseFollowUp}
	}

	s.complete(w)
	if err := s.workflows.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}

	s.log.Info().
		Str("workflow_id", w.ID.String()).
		Msg("assessment workflow completed")
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("workflow id is required")
	}
	return s.workflows.GetByID(ctx, id)
}

func (s *Service) ActiveBySession(ctx context.Context, patientID, sessionID uuid.UUID) (*Workflow, error) {
	if patientID == uuid.Nil || sessionID == uuid.Nil {
		return nil, fmt.Errorf("patient and session ids are required")
	}
	return s.workflows.ActiveBySession(ctx, patientID, sessionID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Workflow, int, error) {
	if patientID == uuid.Nil {
		return nil, 0, fmt.Errorf("patient id is required")
	}
	return s.workflows.ListByPatient(ctx, patientID, limit, offset)
}

// lockedWorkflow loads an active workflow with its per-workflow lock held.
// The caller must unlock. On error the lock is already released.
func (s *Service) lockedWorkflow(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("workflow id is required")
	}

	s.locks.Lock(id.String())
	w, err := s.workflows.GetByID(ctx, id)
	if err != nil {
		s.locks.Unlock(id.String())
		return nil, fmt.Errorf("load workflow: %w", err)
	}
	if !w.IsActive() {
		s.locks.Unlock(id.String())
		return nil, ErrWorkflowCompleted
	}
	return w, nil
}

func (s *Service) complete(w *Workflow) {
	now := time.Now().UTC()
	w.Status = StatusCompleted
	w.CompletedAt = &now
}
