package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Workflow is one assessment workflow for a patient session. At most one may
// be active per patient and session at a time.
type Workflow struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	SessionID   uuid.UUID `db:"session_id" json:"session_id"`
	ClinicianID uuid.UUID `db:"clinician_id" json:"clinician_id"`

	Phase  Phase  `db:"phase" json:"phase"`
	Status string `db:"status" json:"status"`

	FlaggedRiskTypes []risk.Type `db:"flagged_risk_types" json:"flagged_risk_types"`

	ComprehensiveAssessmentID *uuid.UUID  `db:"comprehensive_assessment_id" json:"comprehensive_assessment_id,omitempty"`
	GlobalRiskLevel           *risk.Level `db:"global_risk_level" json:"global_risk_level,omitempty"`
	SafetyPlanID              *uuid.UUID  `db:"safety_plan_id" json:"safety_plan_id,omitempty"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

func (w *Workflow) IsActive() bool {
	return w.Status == StatusActive
}
