package crisis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinsafe/riskengine/internal/domain/risk"
	"github.com/clinsafe/riskengine/internal/platform/lock"
)

// Service serializes crisis writes per assessment identifier. Two concurrent
// callers activating the same assessment are ordered, so the incident log
// reflects who actually acted first.
type Service struct {
	incidents IncidentRepository
	locks     *lock.KeyedMutex
	log       zerolog.Logger
}

func NewService(incidents IncidentRepository, locks *lock.KeyedMutex, log zerolog.Logger) *Service {
	return &Service{incidents: incidents, locks: locks, log: log}
}

// Activate returns the mandatory action bundle for an elevated assessment.
// Levels below high have no protocol and fail with UnsupportedRiskLevel.
func (s *Service) Activate(ctx context.Context, assessmentID uuid.UUID, level risk.Level) (*CrisisProtocol, error) {
	if assessmentID == uuid.Nil {
		return nil, fmt.Errorf("assessment_id is required")
	}

	key := assessmentID.String()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	p, err := ProtocolFor(assessmentID, level)
	if err != nil {
		return nil, err
	}

	s.log.Warn().
		Str("assessment_id", assessmentID.String()).
		Str("risk_level", level.String()).
		Msg("crisis protocol activated")
	return p, nil
}

// DocumentIncidentInput carries the documentation bundle for one incident.
type DocumentIncidentInput struct {
	PatientID            uuid.UUID
	AssessmentID         *uuid.UUID
	OccurredAt           time.Time
	IncidentType         string
	Severity             string
	Description          string
	PrecipitatingFactors []string
	InterventionsUsed    []string
	Outcome              *string
	SafetyPlanUpdated    bool
	AuthoritiesNotified  bool
	FollowUpActions      []string
	DocumentedByID       uuid.UUID
}

// DocumentIncident appends one incident to the log. Prior incidents are
// never touched.
func (s *Service) DocumentIncident(ctx context.Context, in DocumentIncidentInput) (*CrisisIncident, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if in.DocumentedByID == uuid.Nil {
		return nil, fmt.Errorf("documented_by_id is required")
	}
	if in.IncidentType == "" {
		return nil, fmt.Errorf("incident_type is required")
	}
	if in.Severity == "" {
		return nil, fmt.Errorf("severity is required")
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().UTC()
	}

	i := &CrisisIncident{
		PatientID:            in.PatientID,
		AssessmentID:         in.AssessmentID,
		OccurredAt:           in.OccurredAt,
		IncidentType:         in.IncidentType,
		Severity:             in.Severity,
		Description:          in.Description,
		PrecipitatingFactors: emptyIfNil(in.PrecipitatingFactors),
		InterventionsUsed:    emptyIfNil(in.InterventionsUsed),
		Outcome:              in.Outcome,
		SafetyPlanUpdated:    in.SafetyPlanUpdated,
		AuthoritiesNotified:  in.AuthoritiesNotified,
		FollowUpActions:      emptyIfNil(in.FollowUpActions),
		DocumentedByID:       in.DocumentedByID,
	}

	if in.AssessmentID != nil {
		key := in.AssessmentID.String()
		s.locks.Lock(key)
		defer s.locks.Unlock(key)
	}

	if err := s.incidents.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("persist crisis incident: %w", err)
	}

	s.log.Info().
		Str("incident_id", i.ID.String()).
		Str("patient_id", i.PatientID.String()).
		Str("incident_type", i.IncidentType).
		Msg("crisis incident documented")
	return i, nil
}

func (s *Service) GetIncident(ctx context.Context, id uuid.UUID) (*CrisisIncident, error) {
	return s.incidents.GetByID(ctx, id)
}

func (s *Service) ListIncidentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CrisisIncident, int, error) {
	return s.incidents.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListIncidentsByPatientAndSeverity(ctx context.Context, patientID uuid.UUID, severity string, limit, offset int) ([]*CrisisIncident, int, error) {
	if severity == "" {
		return s.incidents.ListByPatient(ctx, patientID, limit, offset)
	}
	return s.incidents.ListByPatientAndSeverity(ctx, patientID, severity, limit, offset)
}

func (s *Service) ListIncidentsByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*CrisisIncident, error) {
	return s.incidents.ListByAssessment(ctx, assessmentID)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
