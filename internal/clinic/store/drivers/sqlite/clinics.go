package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type clinicsRepo struct {
	db dbtx
}

const clinicColumns = `clinic_id, name, address, phone, email, license_number, status,
	created_by, created_at, updated_at`

// addressJSON is the stored shape of the address column.
type addressJSON struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

func encodeAddress(a domain.Address) (string, error) {
	b, err := json.Marshal(addressJSON(a))
	return string(b), err
}

func scanClinic(row scanner) (domain.Clinic, error) {
	var (
		c       domain.Clinic
		address string
	)
	err := row.Scan(&c.ID, &c.Name, &address, &c.Phone, &c.Email, &c.LicenseNumber, &c.Status,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Clinic{}, err
	}

	var a addressJSON
	if err := decodeJSON(address, &a); err != nil {
		return domain.Clinic{}, err
	}
	c.Address = domain.Address(a)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *clinicsRepo) CreateClinic(ctx context.Context, c domain.Clinic) error {
	address, err := encodeAddress(c.Address)
	if err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = domain.ClinicStatusActive
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO clinics (`+clinicColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, address, c.Phone, c.Email, c.LicenseNumber, c.Status,
		c.CreatedBy, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *clinicsRepo) GetClinicByID(ctx context.Context, id string) (domain.Clinic, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clinicColumns+` FROM clinics WHERE clinic_id = ?`, id)
	c, err := scanClinic(row)
	if err != nil {
		return domain.Clinic{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clinicsRepo) ListVisibleClinics(ctx context.Context, therapistID string, clinicID *string) ([]domain.Clinic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clinicColumns+` FROM clinics
		WHERE created_by = ? OR clinic_id = ?
		ORDER BY created_at DESC, clinic_id DESC`,
		therapistID, mapOptionalString(clinicID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Clinic{}
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clinicsRepo) UpdateClinic(ctx context.Context, id string, upd domain.ClinicUpdate, at time.Time) (domain.Clinic, error) {
	var address *string
	if upd.Address != nil {
		encoded, err := encodeAddress(*upd.Address)
		if err != nil {
			return domain.Clinic{}, err
		}
		address = &encoded
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE clinics SET
			name = COALESCE(?, name),
			address = COALESCE(?, address),
			phone = COALESCE(?, phone),
			email = COALESCE(?, email),
			license_number = COALESCE(?, license_number),
			status = COALESCE(?, status),
			updated_at = ?
		WHERE clinic_id = ?`,
		mapOptionalString(upd.Name), mapOptionalString(address), mapOptionalString(upd.Phone),
		mapOptionalString(upd.Email), mapOptionalString(upd.LicenseNumber), mapOptionalString(upd.Status),
		at.UTC(), id,
	)
	if err != nil {
		return domain.Clinic{}, err
	}
	if err := requireAffected(res); err != nil {
		return domain.Clinic{}, err
	}

	return r.GetClinicByID(ctx, id)
}
