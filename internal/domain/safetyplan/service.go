package safetyplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	plans     Repository
	generator *Generator
}

func NewService(plans Repository, generator *Generator) *Service {
	return &Service{plans: plans, generator: generator}
}

// Generate builds a plan from the fixed templates and persists it, replacing
// any prior active plan for the patient.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*SafetyPlan, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if in.CreatedByID == uuid.Nil {
		return nil, fmt.Errorf("created_by_id is required")
	}
	if len(in.RiskTypes) == 0 {
		return nil, fmt.Errorf("at least one risk type is required")
	}

	p := s.generator.Generate(time.Now().UTC(), in)
	if err := s.plans.CreateSuperseding(ctx, p); err != nil {
		return nil, fmt.Errorf("persist safety plan: %w", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SafetyPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SafetyPlan, int, error) {
	return s.plans.ListByPatient(ctx, patientID, limit, offset)
}

// ActiveByPatient returns the patient's current plan, or nil when none is
// active.
func (s *Service) ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*SafetyPlan, error) {
	return s.plans.ActiveByPatient(ctx, patientID)
}

func (s *Service) Expire(ctx context.Context, id uuid.UUID) error {
	return s.plans.MarkExpired(ctx, id)
}

// ExpireOverdue sweeps active plans past their review date. Intended to be
// called from a periodic job or an admin endpoint.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	return s.plans.ExpireOverdue(ctx, time.Now().UTC())
}

func (s *Service) RateEffectiveness(ctx context.Context, id uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("effectiveness rating must be between 1 and 5")
	}
	return s.plans.SetEffectivenessRating(ctx, id, rating)
}
