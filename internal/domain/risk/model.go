package risk

import (
	"time"

	"github.com/google/uuid"
)

// Intervention levels name the recommended care setting derived from the
// global risk level.
const (
	InterventionOutpatient             = "outpatient"
	InterventionIntensiveOutpatient    = "intensive_outpatient"
	InterventionPartialHospitalization = "partial_hospitalization"
	InterventionInpatient              = "inpatient"
)

// CrisisContact is one entry in the contact list handed to the notification
// channel. Delivery is out of scope; only the shape is defined here.
type CrisisContact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// SuicideAssessment maps to the suicide_risk_assessments table. Records are
// append-only; a correction is a new record, never a rewrite.
type SuicideAssessment struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	PatientID              uuid.UUID `db:"patient_id" json:"patient_id"`
	SessionID              uuid.UUID `db:"session_id" json:"session_id"`
	AssessorID             uuid.UUID `db:"assessor_id" json:"assessor_id"`
	AssessedAt             time.Time `db:"assessed_at" json:"assessed_at"`
	IdeationPresent        bool      `db:"ideation_present" json:"ideation_present"`
	IdeationIntensity      int       `db:"ideation_intensity" json:"ideation_intensity"`
	PlanPresent            bool      `db:"plan_present" json:"plan_present"`
	PlanSpecificity        *string   `db:"plan_specificity" json:"plan_specificity,omitempty"`
	PlanLethality          *string   `db:"plan_lethality" json:"plan_lethality,omitempty"`
	IntentPresent          bool      `db:"intent_present" json:"intent_present"`
	IntentLevel            *string   `db:"intent_level" json:"intent_level,omitempty"`
	MeansAccess            bool      `db:"means_access" json:"means_access"`
	PreviousAttempts       []string  `db:"previous_attempts" json:"previous_attempts"`
	RehearsalBehaviors     bool      `db:"rehearsal_behaviors" json:"rehearsal_behaviors"`
	RiskFactors            []string  `db:"risk_factors" json:"risk_factors"`
	ProtectiveFactors      []string  `db:"protective_factors" json:"protective_factors"`
	RawScore               int       `db:"raw_score" json:"raw_score"`
	AdjustedScore          int       `db:"adjusted_score" json:"adjusted_score"`
	RiskLevel              Level     `db:"risk_level" json:"risk_level"`
	ImmediateInterventions []string  `db:"immediate_interventions" json:"immediate_interventions"`
	SafetyPlanCreated      bool      `db:"safety_plan_created" json:"safety_plan_created"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// SelfHarmAssessment maps to the self_harm_assessments table.
type SelfHarmAssessment struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	PatientID              uuid.UUID `db:"patient_id" json:"patient_id"`
	SessionID              uuid.UUID `db:"session_id" json:"session_id"`
	AssessorID             uuid.UUID `db:"assessor_id" json:"assessor_id"`
	AssessedAt             time.Time `db:"assessed_at" json:"assessed_at"`
	CurrentUrges           bool      `db:"current_urges" json:"current_urges"`
	UrgeIntensity          int       `db:"urge_intensity" json:"urge_intensity"`
	MethodsUsed            []string  `db:"methods_used" json:"methods_used"`
	Frequency              *string   `db:"frequency" json:"frequency,omitempty"`
	MedicalComplications   []string  `db:"medical_complications" json:"medical_complications"`
	SuicideRiskLinked      bool      `db:"suicide_risk_linked" json:"suicide_risk_linked"`
	RiskFactors            []string  `db:"risk_factors" json:"risk_factors"`
	ProtectiveFactors      []string  `db:"protective_factors" json:"protective_factors"`
	RawScore               int       `db:"raw_score" json:"raw_score"`
	AdjustedScore          int       `db:"adjusted_score" json:"adjusted_score"`
	RiskLevel              Level     `db:"risk_level" json:"risk_level"`
	ImmediateInterventions []string  `db:"immediate_interventions" json:"immediate_interventions"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// ViolenceIncident is one prior violent incident in a violence history.
type ViolenceIncident struct {
	OccurredAt  time.Time `json:"occurred_at"`
	Description string    `json:"description"`
}

// ViolenceAssessment maps to the violence_risk_assessments table.
type ViolenceAssessment struct {
	ID                     uuid.UUID          `db:"id" json:"id"`
	PatientID              uuid.UUID          `db:"patient_id" json:"patient_id"`
	SessionID              uuid.UUID          `db:"session_id" json:"session_id"`
	AssessorID             uuid.UUID          `db:"assessor_id" json:"assessor_id"`
	AssessedAt             time.Time          `db:"assessed_at" json:"assessed_at"`
	HomicidalIdeation      bool               `db:"homicidal_ideation" json:"homicidal_ideation"`
	SpecificTargets        []string           `db:"specific_targets" json:"specific_targets"`
	ThreatSpecificity      *string            `db:"threat_specificity" json:"threat_specificity,omitempty"`
	ViolenceHistory        []ViolenceIncident `db:"violence_history" json:"violence_history"`
	WeaponAccess           bool               `db:"weapon_access" json:"weapon_access"`
	WeaponTypes            []string           `db:"weapon_types" json:"weapon_types"`
	ImpulseControl         *string            `db:"impulse_control" json:"impulse_control,omitempty"`
	SubstanceUse           bool               `db:"substance_use" json:"substance_use"`
	ParanoidIdeation       bool               `db:"paranoid_ideation" json:"paranoid_ideation"`
	CommandHallucinations  bool               `db:"command_hallucinations" json:"command_hallucinations"`
	RiskFactors            []string           `db:"risk_factors" json:"risk_factors"`
	ProtectiveFactors      []string           `db:"protective_factors" json:"protective_factors"`
	RawScore               int                `db:"raw_score" json:"raw_score"`
	AdjustedScore          int                `db:"adjusted_score" json:"adjusted_score"`
	RiskLevel              Level              `db:"risk_level" json:"risk_level"`
	ImmediateInterventions []string           `db:"immediate_interventions" json:"immediate_interventions"`
	DutyToWarnTriggered    bool               `db:"duty_to_warn_triggered" json:"duty_to_warn_triggered"`
	CreatedAt              time.Time          `db:"created_at" json:"created_at"`
}

// ComprehensiveAssessment maps to the comprehensive_risk_assessments table.
// It references per-type assessments created in the same assessment event but
// does not own their lifecycle; they survive for audit even if the wrapper is
// removed.
type ComprehensiveAssessment struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	PatientID            uuid.UUID       `db:"patient_id" json:"patient_id"`
	SessionID            uuid.UUID       `db:"session_id" json:"session_id"`
	AssessorID           uuid.UUID       `db:"assessor_id" json:"assessor_id"`
	AssessedAt           time.Time       `db:"assessed_at" json:"assessed_at"`
	SuicideAssessmentID  *uuid.UUID      `db:"suicide_assessment_id" json:"suicide_assessment_id,omitempty"`
	SelfHarmAssessmentID *uuid.UUID      `db:"self_harm_assessment_id" json:"self_harm_assessment_id,omitempty"`
	ViolenceAssessmentID *uuid.UUID      `db:"violence_assessment_id" json:"violence_assessment_id,omitempty"`
	RiskProfile          map[Type]Level  `db:"risk_profile" json:"risk_profile"`
	GlobalRiskLevel      Level           `db:"global_risk_level" json:"global_risk_level"`
	InterventionLevel    string          `db:"intervention_level" json:"intervention_level"`
	FollowUpSchedule     string          `db:"follow_up_schedule" json:"follow_up_schedule"`
	CrisisContacts       []CrisisContact `db:"crisis_contacts" json:"crisis_contacts"`
	ClinicalSummary      string          `db:"clinical_summary" json:"clinical_summary"`
	Recommendations      []string        `db:"recommendations" json:"recommendations"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
}
