// Package crisis maps elevated risk levels to mandatory action protocols and
// keeps the append-only incident log.
package crisis

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

// CrisisProtocol is the fixed action bundle for one activation. It is
// derived, not stored; the durable record is the incident documentation.
type CrisisProtocol struct {
	AssessmentID          uuid.UUID  `json:"assessment_id"`
	RiskLevel             risk.Level `json:"risk_level"`
	ImmediateActions      []string   `json:"immediate_actions"`
	AuthorizationRequired []string   `json:"authorization_required"`
	DocumentationRequired []string   `json:"documentation_required"`
}

// CrisisIncident maps to the risk_incidents table. Entries are append-only
// and never mutated after write.
type CrisisIncident struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	PatientID            uuid.UUID  `db:"patient_id" json:"patient_id"`
	AssessmentID         *uuid.UUID `db:"assessment_id" json:"assessment_id,omitempty"`
	OccurredAt           time.Time  `db:"occurred_at" json:"occurred_at"`
	IncidentType         string     `db:"incident_type" json:"incident_type"`
	Severity             string     `db:"severity" json:"severity"`
	Description          string     `db:"description" json:"description"`
	PrecipitatingFactors []string   `db:"precipitating_factors" json:"precipitating_factors"`
	InterventionsUsed    []string   `db:"interventions_used" json:"interventions_used"`
	Outcome              *string    `db:"outcome" json:"outcome,omitempty"`
	SafetyPlanUpdated    bool       `db:"safety_plan_updated" json:"safety_plan_updated"`
	AuthoritiesNotified  bool       `db:"authorities_notified" json:"authorities_notified"`
	FollowUpActions      []string   `db:"follow_up_actions" json:"follow_up_actions"`
	DocumentedByID       uuid.UUID  `db:"documented_by_id" json:"documented_by_id"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}
