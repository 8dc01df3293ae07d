package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type scenariosRepo struct {
	db dbtx
}

const scenarioColumns = `s.scenario_id, s.patient_id, s.therapist_id, s.scenario_type, s.raw_input,
	s.presenting_problems, s.dsm5_codes, s.symptom_severity, s.psychosocial_stressors,
	s.protective_factors, s.assessment_scales, s.prior_responses, s.family_history,
	s.substance_use, s.trauma_history, s.provider_notes, s.urgent_flags, s.session_number,
	s.created_at, s.updated_at`

func scanScenario(row scanner) (domain.Scenario, error) {
	var (
		s                                       domain.Scenario
		problems, codes, flags                  string
		severity, stressors, protective, scales string
		prior, family, substance, trauma        string
	)
	err := row.Scan(&s.ID, &s.PatientID, &s.TherapistID, &s.ScenarioType, &s.RawInput,
		&problems, &codes, &severity, &stressors,
		&protective, &scales, &prior, &family,
		&substance, &trauma, &s.ProviderNotes, &flags, &s.SessionNumber,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Scenario{}, err
	}

	lists := []struct {
		raw string
		dst *[]string
	}{
		{problems, &s.PresentingProblems},
		{codes, &s.DSM5Codes},
		{flags, &s.UrgentFlags},
	}
	for _, l := range lists {
		if err := decodeJSON(l.raw, l.dst); err != nil {
			return domain.Scenario{}, err
		}
	}

	docs := []struct {
		raw string
		dst *domain.Document
	}{
		{severity, &s.SymptomSeverity},
		{stressors, &s.PsychosocialStressors},
		{protective, &s.ProtectiveFactors},
		{scales, &s.AssessmentScales},
		{prior, &s.PriorResponses},
		{family, &s.FamilyHistory},
		{substance, &s.SubstanceUse},
		{trauma, &s.TraumaHistory},
	}
	for _, d := range docs {
		if err := decodeJSON(d.raw, d.dst); err != nil {
			return domain.Scenario{}, err
		}
	}

	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *scenariosRepo) CreateScenario(ctx context.Context, s domain.Scenario) error {
	encoded := make([]string, 0, 11)
	for _, v := range []struct {
		val   any
		empty string
	}{
		{s.PresentingProblems, "[]"},
		{s.DSM5Codes, "[]"},
		{s.SymptomSeverity, "{}"},
		{s.PsychosocialStressors, "{}"},
		{s.ProtectiveFactors, "{}"},
		{s.AssessmentScales, "{}"},
		{s.PriorResponses, "{}"},
		{s.FamilyHistory, "{}"},
		{s.SubstanceUse, "{}"},
		{s.TraumaHistory, "{}"},
		{s.UrgentFlags, "[]"},
	} {
		e, err := encodeJSON(v.val, v.empty)
		if err != nil {
			return err
		}
		encoded = append(encoded, e)
	}
	if s.SessionNumber < 1 {
		s.SessionNumber = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinical_scenarios (
			scenario_id, patient_id, therapist_id, scenario_type, raw_input,
			presenting_problems, dsm5_codes, symptom_severity, psychosocial_stressors,
			protective_factors, assessment_scales, prior_responses, family_history,
			substance_use, trauma_history, provider_notes, urgent_flags, session_number,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.PatientID, s.TherapistID, s.ScenarioType, s.RawInput,
		encoded[0], encoded[1], encoded[2], encoded[3],
		encoded[4], encoded[5], encoded[6], encoded[7],
		encoded[8], encoded[9], s.ProviderNotes, encoded[10], s.SessionNumber,
		s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *scenariosRepo) GetScenario(ctx context.Context, clinicID, id string) (domain.Scenario, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+scenarioColumns+` FROM clinical_scenarios s
		JOIN patients p ON p.patient_id = s.patient_id
		WHERE s.scenario_id = ? AND p.clinic_id = ?`, id, clinicID)
	s, err := scanScenario(row)
	if err != nil {
		return domain.Scenario{}, mapNotFound(err)
	}
	return s, nil
}

func (r *scenariosRepo) ListScenariosByPatient(ctx context.Context, clinicID, patientID string) ([]domain.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scenarioColumns+` FROM clinical_scenarios s
		JOIN patients p ON p.patient_id = s.patient_id
		WHERE s.patient_id = ? AND p.clinic_id = ?
		ORDER BY s.created_at DESC, s.scenario_id DESC`, patientID, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *scenariosRepo) UpdateScenario(ctx context.Context, clinicID, id string, upd domain.ScenarioUpdate, at time.Time) (domain.Scenario, error) {
	var problems, codes, severity, scales, flags *string

	fields := []struct {
		val   any
		isNil bool
		empty string
		dst   **string
	}{
		{upd.PresentingProblems, upd.PresentingProblems == nil, "[]", &problems},
		{upd.DSM5Codes, upd.DSM5Codes == nil, "[]", &codes},
		{upd.SymptomSeverity, upd.SymptomSeverity == nil, "{}", &severity},
		{upd.AssessmentScales, upd.AssessmentScales == nil, "{}", &scales},
		{upd.UrgentFlags, upd.UrgentFlags == nil, "[]", &flags},
	}
	for _, f := range fields {
		if f.isNil {
			continue
		}
		e, err := encodeJSON(f.val, f.empty)
		if err != nil {
			return domain.Scenario{}, err
		}
		*f.dst = &e
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE clinical_scenarios SET
			presenting_problems = COALESCE(?, presenting_problems),
			dsm5_codes = COALESCE(?, dsm5_codes),
			symptom_severity = COALESCE(?, symptom_severity),
			assessment_scales = COALESCE(?, assessment_scales),
			provider_notes = COALESCE(?, provider_notes),
			urgent_flags = COALESCE(?, urgent_flags),
			updated_at = ?
		WHERE scenario_id = ?
		  AND patient_id IN (SELECT patient_id FROM patients WHERE clinic_id = ?)`,
		mapOptionalString(problems), mapOptionalString(codes), mapOptionalString(severity),
		mapOptionalString(scales), mapOptionalString(upd.ProviderNotes), mapOptionalString(flags),
		at.UTC(), id, clinicID,
	)
	if err != nil {
		return domain.Scenario{}, err
	}
	if err := requireAffected(res); err != nil {
		return domain.Scenario{}, err
	}

	return r.GetScenario(ctx, clinicID, id)
}
