package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type therapistsRepo struct {
	db dbtx
}

const therapistColumns = `therapist_id, email, password_hash, first_name, last_name, clinic_id,
	role, mfa_secret, mfa_enabled_at, last_login, created_at, updated_at`

func scanTherapist(row scanner) (domain.Therapist, error) {
	var (
		t            domain.Therapist
		role         string
		clinicID     sql.NullString
		mfaSecret    sql.NullString
		mfaEnabledAt sql.NullTime
		lastLogin    sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Email, &t.PasswordHash, &t.FirstName, &t.LastName, &clinicID,
		&role, &mfaSecret, &mfaEnabledAt, &lastLogin, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Therapist{}, err
	}

	t.Role = domain.Role(role)
	t.ClinicID = mapNullStringPtr(clinicID)
	t.MFASecret = mapNullStringPtr(mfaSecret)
	t.MFAEnabledAt = mapNullTimePtr(mfaEnabledAt)
	t.LastLogin = mapNullTimePtr(lastLogin)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *therapistsRepo) GetTherapistByID(ctx context.Context, id string) (domain.Therapist, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+therapistColumns+` FROM therapists WHERE therapist_id = ?`, id)
	t, err := scanTherapist(row)
	if err != nil {
		return domain.Therapist{}, mapNotFound(err)
	}
	return t, nil
}

func (r *therapistsRepo) GetTherapistByEmail(ctx context.Context, email string) (domain.Therapist, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+therapistColumns+` FROM therapists WHERE email = ?`, email)
	t, err := scanTherapist(row)
	if err != nil {
		return domain.Therapist{}, mapNotFound(err)
	}
	return t, nil
}

func (r *therapistsRepo) CreateTherapist(ctx context.Context, t domain.Therapist) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO therapists (`+therapistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName, mapOptionalString(t.ClinicID),
		string(t.Role), mapOptionalString(t.MFASecret), nullTime(t.MFAEnabledAt), nullTime(t.LastLogin),
		t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *therapistsRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET last_login = ?, updated_at = ? WHERE therapist_id = ?`,
		at.UTC(), at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *therapistsRepo) SetClinic(ctx context.Context, id, clinicID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET clinic_id = ?, updated_at = ? WHERE therapist_id = ?`,
		clinicID, at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *therapistsRepo) UpdateMFASecret(ctx context.Context, id, secret string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET mfa_secret = ?, mfa_enabled_at = NULL, updated_at = ? WHERE therapist_id = ?`,
		secret, at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *therapistsRepo) EnableMFA(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET mfa_enabled_at = ?, updated_at = ? WHERE therapist_id = ? AND mfa_secret IS NOT NULL`,
		at.UTC(), at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *therapistsRepo) DisableMFA(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ? WHERE therapist_id = ?`,
		at.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
