package domain

import "time"

const (
	ScenarioTypeFreeText       = "free_text"
	ScenarioTypeStructuredForm = "structured_form"
	ScenarioTypeImport         = "import"
	ScenarioTypeTranscription  = "transcription"
)

// ScenarioTypes lists every accepted scenario_type value.
var ScenarioTypes = []string{
	ScenarioTypeFreeText,
	ScenarioTypeStructuredForm,
	ScenarioTypeImport,
	ScenarioTypeTranscription,
}

// Scenario is a clinical presentation captured for a patient at a session.
type Scenario struct {
	ID                    string
	PatientID             string
	TherapistID           string
	ScenarioType          string
	RawInput              string
	PresentingProblems    []string
	DSM5Codes             []string
	SymptomSeverity       Document
	PsychosocialStressors Document
	ProtectiveFactors     Document
	AssessmentScales      Document
	PriorResponses        Document
	FamilyHistory         Document
	SubstanceUse          Document
	TraumaHistory         Document
	ProviderNotes         string
	UrgentFlags           []string
	SessionNumber         int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ScenarioUpdate lists the fields a therapist may revise after creation.
type ScenarioUpdate struct {
	PresentingProblems []string
	DSM5Codes          []string
	SymptomSeverity    Document
	AssessmentScales   Document
	ProviderNotes      *string
	UrgentFlags        []string
}
