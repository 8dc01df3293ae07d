package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type interventionsRepo struct {
	db dbtx
}

const interventionColumns = `i.intervention_id, i.patient_id, i.therapist_id, i.intervention_type,
	i.intervention_category, i.duration_minutes, i.setting, i.response_rating, i.notes, i.created_at`

func scanIntervention(row scanner) (domain.Intervention, error) {
	var (
		i        domain.Intervention
		duration sql.NullInt64
		rating   sql.NullInt64
	)
	err := row.Scan(&i.ID, &i.PatientID, &i.TherapistID, &i.InterventionType,
		&i.InterventionCategory, &duration, &i.Setting, &rating, &i.Notes, &i.CreatedAt)
	if err != nil {
		return domain.Intervention{}, err
	}
	i.DurationMinutes = mapNullIntPtr(duration)
	i.ResponseRating = mapNullIntPtr(rating)
	i.CreatedAt = i.CreatedAt.UTC()
	return i, nil
}

func (r *interventionsRepo) CreateIntervention(ctx context.Context, i domain.Intervention) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO interventions (
			intervention_id, patient_id, therapist_id, intervention_type, intervention_category,
			duration_minutes, setting, response_rating, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.PatientID, i.TherapistID, i.InterventionType, i.InterventionCategory,
		mapOptionalInt(i.DurationMinutes), i.Setting, mapOptionalInt(i.ResponseRating), i.Notes,
		i.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *interventionsRepo) ListRecentInterventions(ctx context.Context, clinicID string, limit int) ([]domain.Intervention, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+interventionColumns+` FROM interventions i
		JOIN patients p ON p.patient_id = i.patient_id
		WHERE p.clinic_id = ?
		ORDER BY i.created_at DESC, i.intervention_id DESC
		LIMIT ?`, clinicID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Intervention{}
	for rows.Next() {
		i, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
