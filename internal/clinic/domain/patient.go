package domain

import "time"

const (
	PatientStatusActive     = "active"
	PatientStatusInactive   = "inactive"
	PatientStatusDischarged = "discharged"
)

// Document is a free-form JSON object persisted as-is.
type Document = map[string]any

type Demographics struct {
	FirstName    string
	LastName     string
	DateOfBirth  string // YYYY-MM-DD
	Gender       string
	ContactEmail string
	ContactPhone string
}

type ClinicalProfile struct {
	DSM5Codes          []string
	MedicalHistory     string
	CurrentMedications []string
}

type Patient struct {
	ID                   string
	ClinicID             string
	Demographics         Demographics
	ClinicalProfile      ClinicalProfile
	CurrentPresentations Document
	TreatmentHistory     Document
	Preferences          Document
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PatientUpdate carries a partial update. Nil fields keep their stored value.
type PatientUpdate struct {
	Demographics         *Demographics
	ClinicalProfile      *ClinicalProfile
	CurrentPresentations Document
	TreatmentHistory     Document
	Preferences          Document
	Status               *string
}
