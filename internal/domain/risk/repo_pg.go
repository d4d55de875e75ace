package risk

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinsafe/riskengine/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func connFor(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// encodeJSON serializes list and map fields for jsonb columns. The inputs
// are plain slices and maps of marshalable types, so an error is impossible.
func encodeJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

// =========== Suicide Assessment Repository ===========

type suicideRepoPG struct{ pool *pgxpool.Pool }

func NewSuicideRepoPG(pool *pgxpool.Pool) SuicideRepository {
	return &suicideRepoPG{pool: pool}
}

func (r *suicideRepoPG) conn(ctx context.Context) queryable { return connFor(ctx, r.pool) }

const suicideCols = `id, patient_id, session_id, assessor_id, assessed_at,
	ideation_present, ideation_intensity, plan_present, plan_specificity, plan_lethality,
	intent_present, intent_level, means_access, previous_attempts, rehearsal_behaviors,
	risk_factors, protective_factors, raw_score, adjusted_score, risk_level,
	immediate_interventions, safety_plan_created, created_at`

func scanSuicide(row pgx.Row) (*SuicideAssessment, error) {
	var a SuicideAssessment
	var level string
	var attempts, riskFactors, protective, interventions []byte
	err := row.Scan(&a.ID, &a.PatientID, &a.SessionID, &a.AssessorID, &a.AssessedAt,
		&a.IdeationPresent, &a.IdeationIntensity, &a.PlanPresent, &a.PlanSpecificity, &a.PlanLethality,
		&a.IntentPresent, &a.IntentLevel, &a.MeansAccess, &attempts, &a.RehearsalBehaviors,
		&riskFactors, &protective, &a.RawScore, &a.AdjustedScore, &level,
		&interventions, &a.SafetyPlanCreated, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if a.RiskLevel, err = ParseLevel(level); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attempts, &a.PreviousAttempts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(riskFactors, &a.RiskFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(protective, &a.ProtectiveFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(interventions, &a.ImmediateInterventions); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *suicideRepoPG) Create(ctx context.Context, a *SuicideAssessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO suicide_risk_assessments (id, patient_id, session_id, assessor_id, assessed_at,
			ideation_present, ideation_intensity, plan_present, plan_specificity, plan_lethality,
			intent_present, intent_level, means_access, previous_attempts, rehearsal_behaviors,
			risk_factors, protective_factors, raw_score, adjusted_score, risk_level,
			immediate_interventions, safety_plan_created)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		a.ID, a.PatientID, a.SessionID, a.AssessorID, a.AssessedAt,
		a.IdeationPresent, a.IdeationIntensity, a.PlanPresent, a.PlanSpecificity, a.PlanLethality,
		a.IntentPresent, a.IntentLevel, a.MeansAccess, encodeJSON(a.PreviousAttempts), a.RehearsalBehaviors,
		encodeJSON(a.RiskFactors), encodeJSON(a.ProtectiveFactors), a.RawScore, a.AdjustedScore, a.RiskLevel.String(),
		encodeJSON(a.ImmediateInterventions), a.SafetyPlanCreated)
	return err
}

func (r *suicideRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SuicideAssessment, error) {
	return scanSuicide(r.conn(ctx).QueryRow(ctx, `SELECT `+suicideCols+` FROM suicide_risk_assessments WHERE id = $1`, id))
}

func (r *suicideRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SuicideAssessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM suicide_risk_assessments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+suicideCols+` FROM suicide_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SuicideAssessment
	for rows.Next() {
		a, err := scanSuicide(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *suicideRepoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*SuicideAssessment, error) {
	a, err := scanSuicide(r.conn(ctx).QueryRow(ctx, `SELECT `+suicideCols+` FROM suicide_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// =========== Self-Harm Assessment Repository ===========

type selfHarmRepoPG struct{ pool *pgxpool.Pool }

func NewSelfHarmRepoPG(pool *pgxpool.Pool) SelfHarmRepository {
	return &selfHarmRepoPG{pool: pool}
}

func (r *selfHarmRepoPG) conn(ctx context.Context) queryable { return connFor(ctx, r.pool) }

const selfHarmCols = `id, patient_id, session_id, assessor_id, assessed_at,
	current_urges, urge_intensity, methods_used, frequency, medical_complications,
	suicide_risk_linked, risk_factors, protective_factors, raw_score, adjusted_score,
	risk_level, immediate_interventions, created_at`

func scanSelfHarm(row pgx.Row) (*SelfHarmAssessment, error) {
	var a SelfHarmAssessment
	var level string
	var methods, complications, riskFactors, protective, interventions []byte
	err := row.Scan(&a.ID, &a.PatientID, &a.SessionID, &a.AssessorID, &a.AssessedAt,
		&a.CurrentUrges, &a.UrgeIntensity, &methods, &a.Frequency, &complications,
		&a.SuicideRiskLinked, &riskFactors, &protective, &a.RawScore, &a.AdjustedScore,
		&level, &interventions, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if a.RiskLevel, err = ParseLevel(level); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(methods, &a.MethodsUsed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(complications, &a.MedicalComplications); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(riskFactors, &a.RiskFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(protective, &a.ProtectiveFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(interventions, &a.ImmediateInterventions); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *selfHarmRepoPG) Create(ctx context.Context, a *SelfHarmAssessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO self_harm_assessments (id, patient_id, session_id, assessor_id, assessed_at,
			current_urges, urge_intensity, methods_used, frequency, medical_complications,
			suicide_risk_linked, risk_factors, protective_factors, raw_score, adjusted_score,
			risk_level, immediate_interventions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		a.ID, a.PatientID, a.SessionID, a.AssessorID, a.AssessedAt,
		a.CurrentUrges, a.UrgeIntensity, encodeJSON(a.MethodsUsed), a.Frequency, encodeJSON(a.MedicalComplications),
		a.SuicideRiskLinked, encodeJSON(a.RiskFactors), encodeJSON(a.ProtectiveFactors), a.RawScore, a.AdjustedScore,
		a.RiskLevel.String(), encodeJSON(a.ImmediateInterventions))
	return err
}

func (r *selfHarmRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SelfHarmAssessment, error) {
	return scanSelfHarm(r.conn(ctx).QueryRow(ctx, `SELECT `+selfHarmCols+` FROM self_harm_assessments WHERE id = $1`, id))
}

func (r *selfHarmRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SelfHarmAssessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM self_harm_assessments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+selfHarmCols+` FROM self_harm_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SelfHarmAssessment
	for rows.Next() {
		a, err := scanSelfHarm(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *selfHarmRepoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*SelfHarmAssessment, error) {
	a, err := scanSelfHarm(r.conn(ctx).QueryRow(ctx, `SELECT `+selfHarmCols+` FROM self_harm_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// =========== Violence Assessment Repository ===========

type violenceRepoPG struct{ pool *pgxpool.Pool }

func NewViolenceRepoPG(pool *pgxpool.Pool) ViolenceRepository {
	return &violenceRepoPG{pool: pool}
}

func (r *violenceRepoPG) conn(ctx context.Context) queryable { return connFor(ctx, r.pool) }

const violenceCols = `id, patient_id, session_id, assessor_id, assessed_at,
	homicidal_ideation, specific_targets, threat_specificity, violence_history,
	weapon_access, weapon_types, impulse_control, substance_use, paranoid_ideation,
	command_hallucinations, risk_factors, protective_factors, raw_score, adjusted_score,
	risk_level, immediate_interventions, duty_to_warn_triggered, created_at`

func scanViolence(row pgx.Row) (*ViolenceAssessment, error) {
	var a ViolenceAssessment
	var level string
	var targets, history, weapons, riskFactors, protective, interventions []byte
	err := row.Scan(&a.ID, &a.PatientID, &a.SessionID, &a.AssessorID, &a.AssessedAt,
		&a.HomicidalIdeation, &targets, &a.ThreatSpecificity, &history,
		&a.WeaponAccess, &weapons, &a.ImpulseControl, &a.SubstanceUse, &a.ParanoidIdeation,
		&a.CommandHallucinations, &riskFactors, &protective, &a.RawScore, &a.AdjustedScore,
		&level, &interventions, &a.DutyToWarnTriggered, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if a.RiskLevel, err = ParseLevel(level); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(targets, &a.SpecificTargets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &a.ViolenceHistory); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(weapons, &a.WeaponTypes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(riskFactors, &a.RiskFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(protective, &a.ProtectiveFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(interventions, &a.ImmediateInterventions); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *violenceRepoPG) Create(ctx context.Context, a *ViolenceAssessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO violence_risk_assessments (id, patient_id, session_id, assessor_id, assessed_at,
			homicidal_ideation, specific_targets, threat_specificity, violence_history,
			weapon_access, weapon_types, impulse_control, substance_use, paranoid_ideation,
			command_hallucinations, risk_factors, protective_factors, raw_score, adjusted_score,
			risk_level, immediate_interventions, duty_to_warn_triggered)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		a.ID, a.PatientID, a.SessionID, a.AssessorID, a.AssessedAt,
		a.HomicidalIdeation, encodeJSON(a.SpecificTargets), a.ThreatSpecificity, encodeJSON(a.ViolenceHistory),
		a.WeaponAccess, encodeJSON(a.WeaponTypes), a.ImpulseControl, a.SubstanceUse, a.ParanoidIdeation,
		a.CommandHallucinations, encodeJSON(a.RiskFactors), encodeJSON(a.ProtectiveFactors), a.RawScore, a.AdjustedScore,
		a.RiskLevel.String(), encodeJSON(a.ImmediateInterventions), a.DutyToWarnTriggered)
	return err
}

func (r *violenceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ViolenceAssessment, error) {
	return scanViolence(r.conn(ctx).QueryRow(ctx, `SELECT `+violenceCols+` FROM violence_risk_assessments WHERE id = $1`, id))
}

func (r *violenceRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ViolenceAssessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM violence_risk_assessments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+violenceCols+` FROM violence_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ViolenceAssessment
	for rows.Next() {
		a, err := scanViolence(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *violenceRepoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*ViolenceAssessment, error) {
	a, err := scanViolence(r.conn(ctx).QueryRow(ctx, `SELECT `+violenceCols+` FROM violence_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// =========== Comprehensive Assessment Repository ===========

type comprehensiveRepoPG struct{ pool *pgxpool.Pool }

func NewComprehensiveRepoPG(pool *pgxpool.Pool) ComprehensiveRepository {
	return &comprehensiveRepoPG{pool: pool}
}

func (r *comprehensiveRepoPG) conn(ctx context.Context) queryable { return connFor(ctx, r.pool) }

const comprehensiveCols = `id, patient_id, session_id, assessor_id, assessed_at,
	suicide_assessment_id, self_harm_assessment_id, violence_assessment_id,
	risk_profile, global_risk_level, intervention_level, follow_up_schedule,
	crisis_contacts, clinical_summary, recommendations, created_at`

func scanComprehensive(row pgx.Row) (*ComprehensiveAssessment, error) {
	var a ComprehensiveAssessment
	var level string
	var profile, contacts, recommendations []byte
	err := row.Scan(&a.ID, &a.PatientID, &a.SessionID, &a.AssessorID, &a.AssessedAt,
		&a.SuicideAssessmentID, &a.SelfHarmAssessmentID, &a.ViolenceAssessmentID,
		&profile, &level, &a.InterventionLevel, &a.FollowUpSchedule,
		&contacts, &a.ClinicalSummary, &recommendations, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if a.GlobalRiskLevel, err = ParseLevel(level); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &a.RiskProfile); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contacts, &a.CrisisContacts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recommendations, &a.Recommendations); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *comprehensiveRepoPG) Create(ctx context.Context, a *ComprehensiveAssessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO comprehensive_risk_assessments (id, patient_id, session_id, assessor_id, assessed_at,
			suicide_assessment_id, self_harm_assessment_id, violence_assessment_id,
			risk_profile, global_risk_level, intervention_level, follow_up_schedule,
			crisis_contacts, clinical_summary, recommendations)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		a.ID, a.PatientID, a.SessionID, a.AssessorID, a.AssessedAt,
		a.SuicideAssessmentID, a.SelfHarmAssessmentID, a.ViolenceAssessmentID,
		encodeJSON(a.RiskProfile), a.GlobalRiskLevel.String(), a.InterventionLevel, a.FollowUpSchedule,
		encodeJSON(a.CrisisContacts), a.ClinicalSummary, encodeJSON(a.Recommendations))
	return err
}

func (r *comprehensiveRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ComprehensiveAssessment, error) {
	return scanComprehensive(r.conn(ctx).QueryRow(ctx, `SELECT `+comprehensiveCols+` FROM comprehensive_risk_assessments WHERE id = $1`, id))
}

func (r *comprehensiveRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ComprehensiveAssessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM comprehensive_risk_assessments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+comprehensiveCols+` FROM comprehensive_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ComprehensiveAssessment
	for rows.Next() {
		a, err := scanComprehensive(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *comprehensiveRepoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*ComprehensiveAssessment, error) {
	a, err := scanComprehensive(r.conn(ctx).QueryRow(ctx, `SELECT `+comprehensiveCols+` FROM comprehensive_risk_assessments WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}
