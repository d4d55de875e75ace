package safetyplan

import (
	"context"
	"encoding/json"
	"errors"
	"time"

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

type repoPG struct{ pool *pgxpool.Pool }

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

const planCols = `id, patient_id, created_by_id, status, risk_types_addressed,
	warning_signs, internal_coping_strategies, social_contacts, professional_contacts,
	environmental_safety_steps, reasons_for_living, patient_commitment, review_date,
	effectiveness_rating, created_at`

func scanPlan(row pgx.Row) (*SafetyPlan, error) {
	var p SafetyPlan
	var riskTypes, warningSigns, coping, social, professional, envSteps, reasons []byte
	err := row.Scan(&p.ID, &p.PatientID, &p.CreatedByID, &p.Status, &riskTypes,
		&warningSigns, &coping, &social, &professional,
		&envSteps, &reasons, &p.PatientCommitment, &p.ReviewDate,
		&p.EffectivenessRating, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(riskTypes, &p.RiskTypesAddressed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(warningSigns, &p.WarningSigns); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coping, &p.InternalCopingStrategies); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &p.SocialContacts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(professional, &p.ProfessionalContacts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(envSteps, &p.EnvironmentalSafetySteps); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reasons, &p.ReasonsForLiving); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateSuperseding marks any active plan for the patient superseded and
// inserts the new plan as active, atomically. Readers never observe two
// active plans for one patient.
func (r *repoPG) CreateSuperseding(ctx context.Context, p *SafetyPlan) error {
	p.ID = uuid.New()
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx,
			`UPDATE safety_plans SET status = $1 WHERE patient_id = $2 AND status = $3`,
			StatusSuperseded, p.PatientID, StatusActive); err != nil {
			return err
		}
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO safety_plans (id, patient_id, created_by_id, status, risk_types_addressed,
				warning_signs, internal_coping_strategies, social_contacts, professional_contacts,
				environmental_safety_steps, reasons_for_living, patient_commitment, review_date,
				effectiveness_rating)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			p.ID, p.PatientID, p.CreatedByID, p.Status, encodeJSON(p.RiskTypesAddressed),
			encodeJSON(p.WarningSigns), encodeJSON(p.InternalCopingStrategies), encodeJSON(p.SocialContacts), encodeJSON(p.ProfessionalContacts),
			encodeJSON(p.EnvironmentalSafetySteps), encodeJSON(p.ReasonsForLiving), p.PatientCommitment, p.ReviewDate,
			p.EffectivenessRating)
		return err
	})
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SafetyPlan, error) {
	return scanPlan(r.conn(ctx).QueryRow(ctx, `SELECT `+planCols+` FROM safety_plans WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*SafetyPlan, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM safety_plans WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+planCols+` FROM safety_plans WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SafetyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*SafetyPlan, error) {
	p, err := scanPlan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+planCols+` FROM safety_plans WHERE patient_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`,
		patientID, StatusActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *repoPG) MarkExpired(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE safety_plans SET status = $1 WHERE id = $2 AND status = $3`,
		StatusExpired, id, StatusActive)
	return err
}

func (r *repoPG) ExpireOverdue(ctx context.Context, asOf time.Time) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE safety_plans SET status = $1 WHERE status = $2 AND review_date < $3`,
		StatusExpired, StatusActive, asOf)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *repoPG) SetEffectivenessRating(ctx context.Context, id uuid.UUID, rating int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE safety_plans SET effectiveness_rating = $1 WHERE id = $2`, rating, id)
	return err
}
