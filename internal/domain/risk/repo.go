package risk

import (
	"context"

	"github.com/google/uuid"
)

// Assessment repositories are append-only. There are no update or delete
// methods; a correction is a new record and the old one stays for audit.

type SuicideRepository interface {
	Create(ctx context.Context, a *SuicideAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*SuicideAssessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SuicideAssessment, int, error)
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*SuicideAssessment, error)
}

type SelfHarmRepository interface {
	Create(ctx context.Context, a *SelfHarmAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*SelfHarmAssessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SelfHarmAssessment, int, error)
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*SelfHarmAssessment, error)
}

type ViolenceRepository interface {
	Create(ctx context.Context, a *ViolenceAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*ViolenceAssessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ViolenceAssessment, int, error)
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*ViolenceAssessment, error)
}

type ComprehensiveRepository interface {
	Create(ctx context.Context, a *ComprehensiveAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*ComprehensiveAssessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ComprehensiveAssessment, int, error)
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*ComprehensiveAssessment, error)
}
