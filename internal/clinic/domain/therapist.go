package domain

import "time"

type Therapist struct {
	ID           string
	Email        string // normalised: trimmed and lower-cased
	PasswordHash string // bcrypt encoded
	FirstName    string
	LastName     string
	ClinicID     *string // nil until the therapist joins or creates a clinic
	Role         Role
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	MFAEnabledAt *time.Time // set once the secret has been confirmed
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MFAEnabled reports whether login requires a second factor.
func (t Therapist) MFAEnabled() bool {
	return t.MFAEnabledAt != nil && t.MFASecret != nil
}

// HasClinic reports whether the therapist is affiliated with a clinic.
func (t Therapist) HasClinic() bool {
	return t.ClinicID != nil && *t.ClinicID != ""
}
