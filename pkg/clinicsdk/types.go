package clinicsdk

import (
	"strings"
	"time"
)

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Auth
// ============================================================================

// Therapist is the public view of a therapist. It never carries the password
// hash or the MFA secret.
type Therapist struct {
	TherapistID string     `json:"therapist_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	ClinicID    *string    `json:"clinic_id"`
	Role        string     `json:"role"`
	MFAEnabled  bool       `json:"mfa_enabled"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
	TOTPCode string `json:"totp_code,omitempty" validate:"omitempty,len=6,numeric"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.TOTPCode = strings.TrimSpace(r.TOTPCode)
}

// AuthResponse is returned by both registration and login.
type AuthResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	Therapist Therapist `json:"therapist"`
}

type MeResponse struct {
	Therapist Therapist `json:"therapist"`
}

type TOTPEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type TOTPCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

func (r *TOTPCodeRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
}

// NormalizeEmail trims and lower-cases an address so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ============================================================================
// Clinics
// ============================================================================

type Address struct {
	Street  string `json:"street,omitempty" validate:"omitempty,max=255"`
	City    string `json:"city,omitempty" validate:"omitempty,max=100"`
	State   string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip     string `json:"zip,omitempty" validate:"omitempty,max=20"`
	Country string `json:"country,omitempty" validate:"omitempty,max=100"`
}

type Clinic struct {
	ClinicID      string    `json:"clinic_id"`
	Name          string    `json:"name"`
	Address       Address   `json:"address"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateClinicRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Address       *Address `json:"address,omitempty"`
	Phone         string   `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber string   `json:"license_number,omitempty" validate:"omitempty,max=100"`
}

func (r *CreateClinicRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

type UpdateClinicRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address       *Address `json:"address,omitempty"`
	Phone         *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber *string  `json:"license_number,omitempty" validate:"omitempty,max=100"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

type ClinicResponse struct {
	Message string `json:"message,omitempty"`
	Clinic  Clinic `json:"clinic"`
}

type ClinicListResponse struct {
	Clinics []Clinic `json:"clinics"`
}

// ============================================================================
// Patients
// ============================================================================

type Demographics struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	DateOfBirth  string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender       string `json:"gender,omitempty" validate:"omitempty,oneof=male female non-binary prefer_not_to_say"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty" validate:"omitempty,max=30"`
}

type ClinicalProfile struct {
	DSM5Codes          []string `json:"dsm5_codes"`
	MedicalHistory     string   `json:"medical_history,omitempty"`
	CurrentMedications []string `json:"current_medications"`
}

type Patient struct {
	PatientID            string          `json:"patient_id"`
	ClinicID             string          `json:"clinic_id"`
	Demographics         Demographics    `json:"demographics"`
	ClinicalProfile      ClinicalProfile `json:"clinical_profile"`
	CurrentPresentations map[string]any  `json:"current_presentations"`
	TreatmentHistory     map[string]any  `json:"treatment_history"`
	Preferences          map[string]any  `json:"preferences"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type CreatePatientRequest struct {
	Demographics         *Demographics    `json:"demographics" validate:"required"`
	ClinicalProfile      *ClinicalProfile `json:"clinical_profile" validate:"required"`
	CurrentPresentations map[string]any   `json:"current_presentations,omitempty"`
	TreatmentHistory     map[string]any   `json:"treatment_history,omitempty"`
	Preferences          map[string]any   `json:"preferences,omitempty"`
}

func (r *CreatePatientRequest) Normalize() {
	if r.Demographics != nil {
		r.Demographics.ContactEmail = NormalizeEmail(r.Demographics.ContactEmail)
	}
}

// UpdatePatientRequest replaces only the fields that are present.
type UpdatePatientRequest struct {
	Demographics         *Demographics    `json:"demographics,omitempty"`
	ClinicalProfile      *ClinicalProfile `json:"clinical_profile,omitempty"`
	CurrentPresentations map[string]any   `json:"current_presentations,omitempty"`
	TreatmentHistory     map[string]any   `json:"treatment_history,omitempty"`
	Preferences          map[string]any   `json:"preferences,omitempty"`
	Status               *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive discharged"`
}

type PatientResponse struct {
	Message string  `json:"message,omitempty"`
	Patient Patient `json:"patient"`
}

type PatientListResponse struct {
	Count    int       `json:"count"`
	Patients []Patient `json:"patients"`
}

// ============================================================================
// Clinical scenarios
// ============================================================================

type Scenario struct {
	ScenarioID            string         `json:"scenario_id"`
	PatientID             string         `json:"patient_id"`
	TherapistID           string         `json:"therapist_id"`
	ScenarioType          string         `json:"scenario_type"`
	RawInput              string         `json:"raw_input,omitempty"`
	PresentingProblems    []string       `json:"presenting_problems"`
	DSM5Codes             []string       `json:"dsm5_codes"`
	SymptomSeverity       map[string]any `json:"symptom_severity"`
	PsychosocialStressors map[string]any `json:"psychosocial_stressors"`
	ProtectiveFactors     map[string]any `json:"protective_factors"`
	AssessmentScales      map[string]any `json:"assessment_scales"`
	PriorResponses        map[string]any `json:"prior_responses"`
	FamilyHistory         map[string]any `json:"family_history"`
	SubstanceUse          map[string]any `json:"substance_use"`
	TraumaHistory         map[string]any `json:"trauma_history"`
	ProviderNotes         string         `json:"provider_notes,omitempty"`
	UrgentFlags           []string       `json:"urgent_flags"`
	SessionNumber         int            `json:"session_number"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

type CreateScenarioRequest struct {
	PatientID             string         `json:"patient_id" validate:"required,ulid"`
	ScenarioType          string         `json:"scenario_type" validate:"required,oneof=free_text structured_form import transcription"`
	RawInput              string         `json:"raw_input,omitempty" validate:"required_if=ScenarioType free_text"`
	PresentingProblems    []string       `json:"presenting_problems,omitempty"`
	DSM5Codes             []string       `json:"dsm5_codes,omitempty"`
	SymptomSeverity       map[string]any `json:"symptom_severity,omitempty"`
	PsychosocialStressors map[string]any `json:"psychosocial_stressors,omitempty"`
	ProtectiveFactors     map[string]any `json:"protective_factors,omitempty"`
	AssessmentScales      map[string]any `json:"assessment_scales,omitempty"`
	PriorResponses        map[string]any `json:"prior_responses,omitempty"`
	FamilyHistory         map[string]any `json:"family_history,omitempty"`
	SubstanceUse          map[string]any `json:"substance_use,omitempty"`
	TraumaHistory         map[string]any `json:"trauma_history,omitempty"`
	ProviderNotes         string         `json:"provider_notes,omitempty"`
	UrgentFlags           []string       `json:"urgent_flags,omitempty"`
	SessionNumber         *int           `json:"session_number,omitempty" validate:"omitempty,gte=1"`
}

func (r *CreateScenarioRequest) Normalize() {
	r.PatientID = strings.ToUpper(strings.TrimSpace(r.PatientID))
}

// UpdateScenarioRequest lists the fields that may be revised after creation.
type UpdateScenarioRequest struct {
	PresentingProblems []string       `json:"presenting_problems,omitempty"`
	DSM5Codes          []string       `json:"dsm5_codes,omitempty"`
	SymptomSeverity    map[string]any `json:"symptom_severity,omitempty"`
	AssessmentScales   map[string]any `json:"assessment_scales,omitempty"`
	ProviderNotes      *string        `json:"provider_notes,omitempty"`
	UrgentFlags        []string       `json:"urgent_flags,omitempty"`
}

type ScenarioResponse struct {
	Message  string   `json:"message,omitempty"`
	Scenario Scenario `json:"scenario"`
}

type ScenarioListResponse struct {
	Count     int        `json:"count"`
	Scenarios []Scenario `json:"scenarios"`
}

// ============================================================================
// Assessment scales
// ============================================================================

type AssessmentScale struct {
	ScaleID      string `json:"scale_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
	ItemCount    int    `json:"item_count"`
	MinScore     int    `json:"min_score"`
	MaxScore     int    `json:"max_score"`
	ScoringNotes string `json:"scoring_notes,omitempty"`
}

type ScaleResponse struct {
	Scale AssessmentScale `json:"scale"`
}

type ScaleListResponse struct {
	Category string            `json:"category,omitempty"`
	Count    int               `json:"count"`
	Scales   []AssessmentScale `json:"scales"`
}

type ScaleCategoriesResponse struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

// ============================================================================
// Interventions
// ============================================================================

type Intervention struct {
	InterventionID       string    `json:"intervention_id"`
	PatientID            string    `json:"patient_id"`
	TherapistID          string    `json:"therapist_id"`
	InterventionType     string    `json:"intervention_type"`
	InterventionCategory string    `json:"intervention_category,omitempty"`
	DurationMinutes      *int      `json:"duration_minutes,omitempty"`
	Setting              string    `json:"setting,omitempty"`
	ResponseRating       *int      `json:"response_rating,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

type QuickLogRequest struct {
	PatientID            string `json:"patient_id" validate:"required,ulid"`
	InterventionType     string `json:"intervention_type" validate:"required,max=100"`
	InterventionCategory string `json:"intervention_category,omitempty" validate:"omitempty,max=100"`
	DurationMinutes      *int   `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=480"`
	Setting              string `json:"setting,omitempty" validate:"omitempty,max=100"`
	ResponseRating       *int   `json:"response_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Notes                string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func (r *QuickLogRequest) Normalize() {
	r.PatientID = strings.ToUpper(strings.TrimSpace(r.PatientID))
	r.InterventionType = strings.TrimSpace(r.InterventionType)
}

type InterventionResponse struct {
	Message      string       `json:"message,omitempty"`
	Intervention Intervention `json:"intervention"`
}

type InterventionListResponse struct {
	Count         int            `json:"count"`
	Interventions []Intervention `json:"interventions"`
}

// ============================================================================
// Evidence
// ============================================================================

type EvidenceResponse struct {
	InterventionType string    `json:"intervention_type"`
	Summary          string    `json:"summary"`
	Evidence         string    `json:"evidence"`
	FetchedAt        time.Time `json:"fetched_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	Cached           bool      `json:"cached"`
}
