package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinsafe/riskengine/internal/domain/risk"
	"github.com/clinsafe/riskengine/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
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

const workflowCols = `id, patient_id, session_id, clinician_id, phase, status,
	flagged_risk_types, comprehensive_assessment_id, global_risk_level,
	safety_plan_id, created_at, updated_at, completed_at`

func scanWorkflow(row pgx.Row) (*Workflow, error) {
	var w Workflow
	var phase string
	var flaggedJSON []byte
	var globalLevel *string

	err := row.Scan(
		&w.ID, &w.PatientID, &w.SessionID, &w.ClinicianID, &phase, &w.Status,
		&flaggedJSON, &w.ComprehensiveAssessmentID, &globalLevel,
		&w.SafetyPlanID, &w.CreatedAt, &w.UpdatedAt, &w.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Phase, err = ParsePhase(phase)
	if err != nil {
		return nil, err
	}
	if globalLevel != nil {
		lvl, err := risk.ParseLevel(*globalLevel)
		if err != nil {
			return nil, err
		}
		w.GlobalRiskLevel = &lvl
	}
	if err := json.Unmarshal(flaggedJSON, &w.FlaggedRiskTypes); err != nil {
		return nil, fmt.Errorf("decode flagged risk types: %w", err)
	}
	return &w, nil
}

func (r *repoPG) Create(ctx context.Context, w *Workflow) error {
	w.ID = uuid.New()
	var globalLevel *string
	if w.GlobalRiskLevel != nil {
		s := w.GlobalRiskLevel.String()
		globalLevel = &s
	}

	query := `
		INSERT INTO risk_workflows (
			id, patient_id, session_id, clinician_id, phase, status,
			flagged_risk_types, comprehensive_assessment_id, global_risk_level,
			safety_plan_id, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.conn(ctx).Exec(ctx, query,
		w.ID, w.PatientID, w.SessionID, w.ClinicianID, w.Phase.String(), w.Status,
		encodeJSON(w.FlaggedRiskTypes), w.ComprehensiveAssessmentID, globalLevel,
		w.SafetyPlanID, w.CompletedAt,
	)
	return err
}

func (r *repoPG) Update(ctx context.Context, w *Workflow) error {
	var globalLevel *string
	if w.GlobalRiskLevel != nil {
		s := w.GlobalRiskLevel.String()
		globalLevel = &s
	}

	query := `
		UPDATE risk_workflows SET
			phase = $2, status = $3, flagged_risk_types = $4,
			comprehensive_assessment_id = $5, global_risk_level = $6,
			safety_plan_id = $7, completed_at = $8, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.conn(ctx).Exec(ctx, query,
		w.ID, w.Phase.String(), w.Status, encodeJSON(w.FlaggedRiskTypes),
		w.ComprehensiveAssessmentID, globalLevel, w.SafetyPlanID, w.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Workflow, error) {
	query := `SELECT ` + workflowCols + ` FROM risk_workflows WHERE id = $1`
	return scanWorkflow(r.conn(ctx).QueryRow(ctx, query, id))
}

func (r *repoPG) ActiveBySession(ctx context.Context, patientID, sessionID uuid.UUID) (*Workflow, error) {
	query := `SELECT ` + workflowCols + ` FROM risk_workflows
		WHERE patient_id = $1 AND session_id = $2 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	w, err := scanWorkflow(r.conn(ctx).QueryRow(ctx, query, patientID, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Workflow, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM risk_workflows WHERE patient_id = $1`
	if err := r.conn(ctx).QueryRow(ctx, countQuery, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + workflowCols + ` FROM risk_workflows
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.conn(ctx).Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var workflows []*Workflow
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, 0, err
		}
		workflows = append(workflows, w)
	}
	return workflows, total, rows.Err()
}
