package workflow

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists workflows. Update is the only mutation: the workflow
// row tracks current phase and status; transitions already taken are implied
// by the linked assessment and plan records.
type Repository interface {
	Create(ctx context.Context, w *Workflow) error
	Update(ctx context.Context, w *Workflow) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workflow, error)
	// ActiveBySession returns the active workflow for a patient session, or
	// (nil, nil) when none is open.
	ActiveBySession(ctx context.Context, patientID, sessionID uuid.UUID) (*Workflow, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Workflow, int, error)
}
