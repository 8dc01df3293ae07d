package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type patientsRepo struct {
	db dbtx
}

const patientColumns = `patient_id, clinic_id, demographics, clinical_profile, current_presentations,
	treatment_history, preferences, status, created_at, updated_at`

type demographicsJSON struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	Gender       string `json:"gender,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

type clinicalProfileJSON struct {
	DSM5Codes          []string `json:"dsm5_codes"`
	MedicalHistory     string   `json:"medical_history,omitempty"`
	CurrentMedications []string `json:"current_medications"`
}

func encodeClinicalProfile(p domain.ClinicalProfile) (string, error) {
	if p.DSM5Codes == nil {
		p.DSM5Codes = []string{}
	}
	if p.CurrentMedications == nil {
		p.CurrentMedications = []string{}
	}
	return encodeJSON(clinicalProfileJSON(p), "{}")
}

func scanPatient(row scanner) (domain.Patient, error) {
	var (
		p                                   domain.Patient
		demographics, profile               string
		presentations, history, preferences string
	)
	err := row.Scan(&p.ID, &p.ClinicID, &demographics, &profile, &presentations,
		&history, &preferences, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Patient{}, err
	}

	var d demographicsJSON
	if err := decodeJSON(demographics, &d); err != nil {
		return domain.Patient{}, err
	}
	var cp clinicalProfileJSON
	if err := decodeJSON(profile, &cp); err != nil {
		return domain.Patient{}, err
	}
	p.Demographics = domain.Demographics(d)
	p.ClinicalProfile = domain.ClinicalProfile(cp)

	docs := []struct {
		raw string
		dst *domain.Document
	}{
		{presentations, &p.CurrentPresentations},
		{history, &p.TreatmentHistory},
		{preferences, &p.Preferences},
	}
	for _, d := range docs {
		if err := decodeJSON(d.raw, d.dst); err != nil {
			return domain.Patient{}, err
		}
	}

	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *patientsRepo) CreatePatient(ctx context.Context, p domain.Patient) error {
	demographics, err := encodeJSON(demographicsJSON(p.Demographics), "{}")
	if err != nil {
		return err
	}
	profile, err := encodeClinicalProfile(p.ClinicalProfile)
	if err != nil {
		return err
	}
	presentations, err := encodeJSON(p.CurrentPresentations, "{}")
	if err != nil {
		return err
	}
	history, err := encodeJSON(p.TreatmentHistory, "{}")
	if err != nil {
		return err
	}
	preferences, err := encodeJSON(p.Preferences, "{}")
	if err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = domain.PatientStatusActive
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClinicID, demographics, profile, presentations, history, preferences, p.Status,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *patientsRepo) GetPatient(ctx context.Context, clinicID, id string) (domain.Patient, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE patient_id = ? AND clinic_id = ?`, id, clinicID)
	p, err := scanPatient(row)
	if err != nil {
		return domain.Patient{}, mapNotFound(err)
	}
	return p, nil
}

func (r *patientsRepo) ListPatients(ctx context.Context, clinicID string) ([]domain.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+` FROM patients
		WHERE clinic_id = ?
		ORDER BY created_at DESC, patient_id DESC`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *patientsRepo) UpdatePatient(ctx context.Context, clinicID, id string, upd domain.PatientUpdate, at time.Time) (domain.Patient, error) {
	var demographics, profile, presentations, history, preferences *string

	if upd.Demographics != nil {
		s, err := encodeJSON(demographicsJSON(*upd.Demographics), "{}")
		if err != nil {
			return domain.Patient{}, err
		}
		demographics = &s
	}
	if upd.ClinicalProfile != nil {
		s, err := encodeClinicalProfile(*upd.ClinicalProfile)
		if err != nil {
			return domain.Patient{}, err
		}
		profile = &s
	}
	docs := []struct {
		doc domain.Document
		dst **string
	}{
		{upd.CurrentPresentations, &presentations},
		{upd.TreatmentHistory, &history},
		{upd.Preferences, &preferences},
	}
	for _, d := range docs {
		if d.doc == nil {
			continue
		}
		s, err := encodeJSON(d.doc, "{}")
		if err != nil {
			return domain.Patient{}, err
		}
		*d.dst = &s
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE patients SET
			demographics = COALESCE(?, demographics),
			clinical_profile = COALESCE(?, clinical_profile),
			current_presentations = COALESCE(?, current_presentations),
			treatment_history = COALESCE(?, treatment_history),
			preferences = COALESCE(?, preferences),
			status = COALESCE(?, status),
			updated_at = ?
		WHERE patient_id = ? AND clinic_id = ?`,
		mapOptionalString(demographics), mapOptionalString(profile), mapOptionalString(presentations),
		mapOptionalString(history), mapOptionalString(preferences), mapOptionalString(upd.Status),
		at.UTC(), id, clinicID,
	)
	if err != nil {
		return domain.Patient{}, err
	}
	if err := requireAffected(res); err != nil {
		return domain.Patient{}, err
	}

	return r.GetPatient(ctx, clinicID, id)
}
