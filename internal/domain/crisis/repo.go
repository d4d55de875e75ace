package crisis

import (
	"context"

	"github.com/google/uuid"
)

// IncidentRepository is append-only; incidents are never updated or deleted.
type IncidentRepository interface {
	Create(ctx context.Context, i *CrisisIncident) error
	GetByID(ctx context.Context, id uuid.UUID) (*CrisisIncident, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CrisisIncident, int, error)
	ListByPatientAndSeverity(ctx context.Context, patientID uuid.UUID, severity string, limit, offset int) ([]*CrisisIncident, int, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*CrisisIncident, error)
}
