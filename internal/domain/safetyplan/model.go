// Package safetyplan generates and stores patient safety plans derived from
// completed risk assessments.
package safetyplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinsafe/riskengine/internal/domain/risk"
)

// Statuses a plan can hold. Content is never edited in place; a replacement
// plan supersedes the old one.
const (
	StatusActive     = "active"
	StatusSuperseded = "superseded"
	StatusExpired    = "expired"
)

// Contact is one person or service the patient can reach.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// SafetyPlan maps to the safety_plans table.
type SafetyPlan struct {
	ID                       uuid.UUID   `db:"id" json:"id"`
	PatientID                uuid.UUID   `db:"patient_id" json:"patient_id"`
	CreatedByID              uuid.UUID   `db:"created_by_id" json:"created_by_id"`
	Status                   string      `db:"status" json:"status"`
	RiskTypesAddressed       []risk.Type `db:"risk_types_addressed" json:"risk_types_addressed"`
	WarningSigns             []string    `db:"warning_signs" json:"warning_signs"`
	InternalCopingStrategies []string    `db:"internal_coping_strategies" json:"internal_coping_strategies"`
	SocialContacts           []Contact   `db:"social_contacts" json:"social_contacts"`
	ProfessionalContacts     []Contact   `db:"professional_contacts" json:"professional_contacts"`
	EnvironmentalSafetySteps []string    `db:"environmental_safety_steps" json:"environmental_safety_steps"`
	ReasonsForLiving         []string    `db:"reasons_for_living" json:"reasons_for_living"`
	PatientCommitment        *string     `db:"patient_commitment" json:"patient_commitment,omitempty"`
	ReviewDate               time.Time   `db:"review_date" json:"review_date"`
	EffectivenessRating      *int        `db:"effectiveness_rating" json:"effectiveness_rating,omitempty"`
	CreatedAt                time.Time   `db:"created_at" json:"created_at"`
}
