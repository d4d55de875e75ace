package crisis

import (
	"context"
	"encoding/json"

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

type incidentRepoPG struct{ pool *pgxpool.Pool }

func NewIncidentRepoPG(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepoPG{pool: pool}
}

func (r *incidentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func encodeJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

const incidentCols = `id, patient_id, assessment_id, occurred_at, incident_type, severity,
	description, precipitating_factors, interventions_used, outcome,
	safety_plan_updated, authorities_notified, follow_up_actions, documented_by_id, created_at`

func scanIncident(row pgx.Row) (*CrisisIncident, error) {
	var i CrisisIncident
	var precipitating, interventions, followUps []byte
	err := row.Scan(&i.ID, &i.PatientID, &i.AssessmentID, &i.OccurredAt, &i.IncidentType, &i.Severity,
		&i.Description, &precipitating, &interventions, &i.Outcome,
		&i.SafetyPlanUpdated, &i.AuthoritiesNotified, &followUps, &i.DocumentedByID, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(precipitating, &i.PrecipitatingFactors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(interventions, &i.InterventionsUsed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(followUps, &i.FollowUpActions); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *incidentRepoPG) Create(ctx context.Context, i *CrisisIncident) error {
	i.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO risk_incidents (id, patient_id, assessment_id, occurred_at, incident_type, severity,
			description, precipitating_factors, interventions_used, outcome,
			safety_plan_updated, authorities_notified, follow_up_actions, documented_by_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		i.ID, i.PatientID, i.AssessmentID, i.OccurredAt, i.IncidentType, i.Severity,
		i.Description, encodeJSON(i.PrecipitatingFactors), encodeJSON(i.InterventionsUsed), i.Outcome,
		i.SafetyPlanUpdated, i.AuthoritiesNotified, encodeJSON(i.FollowUpActions), i.DocumentedByID)
	return err
}

func (r *incidentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CrisisIncident, error) {
	return scanIncident(r.conn(ctx).QueryRow(ctx, `SELECT `+incidentCols+` FROM risk_incidents WHERE id = $1`, id))
}

func (r *incidentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CrisisIncident, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM risk_incidents WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+incidentCols+` FROM risk_incidents WHERE patient_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CrisisIncident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

func (r *incidentRepoPG) ListByPatientAndSeverity(ctx context.Context, patientID uuid.UUID, severity string, limit, offset int) ([]*CrisisIncident, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM risk_incidents WHERE patient_id = $1 AND severity = $2`, patientID, severity).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+incidentCols+` FROM risk_incidents WHERE patient_id = $1 AND severity = $2 ORDER BY occurred_at DESC LIMIT $3 OFFSET $4`, patientID, severity, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CrisisIncident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

func (r *incidentRepoPG) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*CrisisIncident, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+incidentCols+` FROM risk_incidents WHERE assessment_id = $1 ORDER BY occurred_at ASC`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CrisisIncident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
