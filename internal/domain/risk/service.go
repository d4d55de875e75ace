package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service validates identifiers, runs the assessors, and persists results.
// A scoring result that fails to persist is surfaced as an error, never
// returned as if recorded; an unsaved assessment must not be acted on.
type Service struct {
	suicide       SuicideRepository
	selfHarm      SelfHarmRepository
	violence      ViolenceRepository
	comprehensive ComprehensiveRepository
}

func NewService(
	suicide SuicideRepository,
	selfHarm SelfHarmRepository,
	violence ViolenceRepository,
	comprehensive ComprehensiveRepository,
) *Service {
	return &Service{
		suicide:       suicide,
		selfHarm:      selfHarm,
		violence:      violence,
		comprehensive: comprehensive,
	}
}

func requireIDs(patientID, sessionID, assessorID uuid.UUID) error {
	if patientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if sessionID == uuid.Nil {
		return fmt.Errorf("session_id is required")
	}
	if assessorID == uuid.Nil {
		return fmt.Errorf("assessor_id is required")
	}
	return nil
}

// -- Assessors --

func (s *Service) AssessSuicide(ctx context.Context, patientID, sessionID, assessorID uuid.UUID, r SuicideResponses) (*SuicideAssessment, error) {
	if err := requireIDs(patientID, sessionID, assessorID); err != nil {
		return nil, err
	}
	a, err := AssessSuicide(patientID, sessionID, assessorID, time.Now().UTC(), r)
	if err != nil {
		return nil, err
	}
	if err := s.suicide.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("persist suicide assessment: %w", err)
	}
	return a, nil
}

func (s *Service) AssessSelfHarm(ctx context.Context, patientID, sessionID, assessorID uuid.UUID, r SelfHarmResponses) (*SelfHarmAssessment, error) {
	if err := requireIDs(patientID, sessionID, assessorID); err != nil {
		return nil, err
	}
	a, err := AssessSelfHarm(patientID, sessionID, assessorID, time.Now().UTC(), r)
	if err != nil {
		return nil, err
	}
	if err := s.selfHarm.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("persist self-harm assessment: %w", err)
	}
	return a, nil
}

func (s *Service) AssessViolence(ctx context.Context, patientID, sessionID, assessorID uuid.UUID, r ViolenceResponses) (*ViolenceAssessment, error) {
	if err := requireIDs(patientID, sessionID, assessorID); err != nil {
		return nil, err
	}
	a, err := AssessViolence(patientID, sessionID, assessorID, time.Now().UTC(), r)
	if err != nil {
		return nil, err
	}
	if err := s.violence.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("persist violence assessment: %w", err)
	}
	return a, nil
}

// Aggregate merges per-type results into a comprehensive assessment and
// persists it.
func (s *Service) Aggregate(ctx context.Context, in AggregateInput) (*ComprehensiveAssessment, error) {
	if err := requireIDs(in.PatientID, in.SessionID, in.AssessorID); err != nil {
		return nil, err
	}
	a := Aggregate(time.Now().UTC(), in)
	if err := s.comprehensive.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("persist comprehensive assessment: %w", err)
	}
	return a, nil
}

// -- Reads --

func (s *Service) GetSuicideAssessment(ctx context.Context, id uuid.UUID) (*SuicideAssessment, error) {
	return s.suicide.GetByID(ctx, id)
}

func (s *Service) ListSuicideAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SuicideAssessment, int, error) {
	return s.suicide.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetSelfHarmAssessment(ctx context.Context, id uuid.UUID) (*SelfHarmAssessment, error) {
	return s.selfHarm.GetByID(ctx, id)
}

func (s *Service) ListSelfHarmAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SelfHarmAssessment, int, error) {
	return s.selfHarm.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetViolenceAssessment(ctx context.Context, id uuid.UUID) (*ViolenceAssessment, error) {
	return s.violence.GetByID(ctx, id)
}

func (s *Service) ListViolenceAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ViolenceAssessment, int, error) {
	return s.violence.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetComprehensiveAssessment(ctx context.Context, id uuid.UUID) (*ComprehensiveAssessment, error) {
	return s.comprehensive.GetByID(ctx, id)
}

func (s *Service) ListComprehensiveAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ComprehensiveAssessment, int, error) {
	return s.comprehensive.ListByPatient(ctx, patientID, limit, offset)
}

// LatestComprehensiveByPatient returns the most recent comprehensive
// assessment, or nil when the patient has none.
func (s *Service) LatestComprehensiveByPatient(ctx context.Context, patientID uuid.UUID) (*ComprehensiveAssessment, error) {
	return s.comprehensive.LatestByPatient(ctx, patientID)
}

// -- Catalog --

func (s *Service) RiskFactors(t Type) []RiskFactor {
	return FactorsFor(t)
}

func (s *Service) ProtectiveFactorCatalog() []ProtectiveFactor {
	return ProtectiveFactors()
}
