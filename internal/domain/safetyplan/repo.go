package safetyplan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository treats plan content as append-only. CreateSuperseding inserts a
// new active plan and marks any prior active plans superseded in one
// transaction; status transitions are the only permitted mutation.
type Repository interface {
	CreateSuperseding(ctx context.Context, p *SafetyPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*SafetyPlan, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SafetyPlan, int, error)
	ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*SafetyPlan, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
	// ExpireOverdue marks every active plan whose review date has passed as
	// expired and reports how many were affected.
	ExpireOverdue(ctx context.Context, asOf time.Time) (int, error)
	SetEffectivenessRating(ctx context.Context, id uuid.UUID, rating int) error
}
