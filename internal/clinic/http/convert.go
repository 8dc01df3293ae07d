package http

import (
	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
)

func toTherapist(t domain.Therapist) clinicsdk.Therapist {
	return clinicsdk.Therapist{
		TherapistID: t.ID,
		Email:       t.Email,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		ClinicID:    t.ClinicID,
		Role:        string(t.Role),
		MFAEnabled:  t.MFAEnabled(),
		LastLogin:   t.LastLogin,
		CreatedAt:   t.CreatedAt,
	}
}

func toAddress(a domain.Address) clinicsdk.Address {
	return clinicsdk.Address(a)
}

func fromAddress(a *clinicsdk.Address) *domain.Address {
	if a == nil {
		return nil
	}
	d := domain.Address(*a)
	return &d
}

func toClinic(c domain.Clinic) clinicsdk.Clinic {
	return clinicsdk.Clinic{
		ClinicID:      c.ID,
		Name:          c.Name,
		Address:       toAddress(c.Address),
		Phone:         c.Phone,
		Email:         c.Email,
		LicenseNumber: c.LicenseNumber,
		Status:        c.Status,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toClinics(cs []domain.Clinic) []clinicsdk.Clinic {
	out := make([]clinicsdk.Clinic, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClinic(c))
	}
	return out
}

func toDemographics(d domain.Demographics) clinicsdk.Demographics {
	return clinicsdk.Demographics(d)
}

func fromDemographics(d *clinicsdk.Demographics) *domain.Demographics {
	if d == nil {
		return nil
	}
	out := domain.Demographics(*d)
	return &out
}

func toClinicalProfile(p domain.ClinicalProfile) clinicsdk.ClinicalProfile {
	return clinicsdk.ClinicalProfile{
		DSM5Codes:          nonNilStrings(p.DSM5Codes),
		MedicalHistory:     p.MedicalHistory,
		CurrentMedications: nonNilStrings(p.CurrentMedications),
	}
}

func fromClinicalProfile(p *clinicsdk.ClinicalProfile) *domain.ClinicalProfile {
	if p == nil {
		return nil
	}
	return &domain.ClinicalProfile{
		DSM5Codes:          p.DSM5Codes,
		MedicalHistory:     p.MedicalHistory,
		CurrentMedications: p.CurrentMedications,
	}
}

func toPatient(p domain.Patient) clinicsdk.Patient {
	return clinicsdk.Patient{
		PatientID:            p.ID,
		ClinicID:             p.ClinicID,
		Demographics:         toDemographics(p.Demographics),
		ClinicalProfile:      toClinicalProfile(p.ClinicalProfile),
		CurrentPresentations: nonNilDoc(p.CurrentPresentations),
		TreatmentHistory:     nonNilDoc(p.TreatmentHistory),
		Preferences:          nonNilDoc(p.Preferences),
		Status:               p.Status,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toPatients(ps []domain.Patient) []clinicsdk.Patient {
	out := make([]clinicsdk.Patient, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPatient(p))
	}
	return out
}

func toScenario(s domain.Scenario) clinicsdk.Scenario {
	return clinicsdk.Scenario{
		ScenarioID:            s.ID,
		PatientID:             s.PatientID,
		TherapistID:           s.TherapistID,
		ScenarioType:          s.ScenarioType,
		RawInput:              s.RawInput,
		PresentingProblems:    nonNilStrings(s.PresentingProblems),
		DSM5Codes:             nonNilStrings(s.DSM5Codes),
		SymptomSeverity:       nonNilDoc(s.SymptomSeverity),
		PsychosocialStressors: nonNilDoc(s.PsychosocialStressors),
		ProtectiveFactors:     nonNilDoc(s.ProtectiveFactors),
		AssessmentScales:      nonNilDoc(s.AssessmentScales),
		PriorResponses:        nonNilDoc(s.PriorResponses),
		FamilyHistory:         nonNilDoc(s.FamilyHistory),
		SubstanceUse:          nonNilDoc(s.SubstanceUse),
		TraumaHistory:         nonNilDoc(s.TraumaHistory),
		ProviderNotes:         s.ProviderNotes,
		UrgentFlags:           nonNilStrings(s.UrgentFlags),
		SessionNumber:         s.SessionNumber,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toScenarios(ss []domain.Scenario) []clinicsdk.Scenario {
	out := make([]clinicsdk.Scenario, 0, len(ss))
	for _, s := range ss {
		out = append(out, toScenario(s))
	}
	return out
}

func fromCreateScenario(req clinicsdk.CreateScenarioRequest) domain.Scenario {
	s := domain.Scenario{
		PatientID:             req.PatientID,
		ScenarioType:          req.ScenarioType,
		RawInput:              req.RawInput,
		PresentingProblems:    req.PresentingProblems,
		DSM5Codes:             req.DSM5Codes,
		SymptomSeverity:       req.SymptomSeverity,
		PsychosocialStressors: req.PsychosocialStressors,
		ProtectiveFactors:     req.ProtectiveFactors,
		AssessmentScales:      req.AssessmentScales,
		PriorResponses:        req.PriorResponses,
		FamilyHistory:         req.FamilyHistory,
		SubstanceUse:          req.SubstanceUse,
		TraumaHistory:         req.TraumaHistory,
		ProviderNotes:         req.ProviderNotes,
		UrgentFlags:           req.UrgentFlags,
	}
	if req.SessionNumber != nil {
		s.SessionNumber = *req.SessionNumber
	}
	return s
}

func toScale(s domain.AssessmentScale) clinicsdk.AssessmentScale {
	return clinicsdk.AssessmentScale{
		ScaleID:      s.ID,
		Name:         s.Name,
		Abbreviation: s.Abbreviation,
		Category:     s.Category,
		Description:  s.Description,
		ItemCount:    s.ItemCount,
		MinScore:     s.MinScore,
		MaxScore:     s.MaxScore,
		ScoringNotes: s.ScoringNotes,
	}
}

func toScales(ss []domain.AssessmentScale) []clinicsdk.AssessmentScale {
	out := make([]clinicsdk.AssessmentScale, 0, len(ss))
	for _, s := range ss {
		out = append(out, toScale(s))
	}
	return out
}

func toIntervention(i domain.Intervention) clinicsdk.Intervention {
	return clinicsdk.Intervention{
		InterventionID:       i.ID,
		PatientID:            i.PatientID,
		TherapistID:          i.TherapistID,
		InterventionType:     i.InterventionType,
		InterventionCategory: i.InterventionCategory,
		DurationMinutes:      i.DurationMinutes,
		Setting:              i.Setting,
		ResponseRating:       i.ResponseRating,
		Notes:                i.Notes,
		CreatedAt:            i.CreatedAt,
	}
}

func toInterventions(is []domain.Intervention) []clinicsdk.Intervention {
	out := make([]clinicsdk.Intervention, 0, len(is))
	for _, i := range is {
		out = append(out, toIntervention(i))
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilDoc(d domain.Document) map[string]any {
	if d == nil {
		return map[string]any{}
	}
	return d
}
