package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories are exposed as methods so a Tx-scoped Store can hand out
// repos bound to the transaction and nothing can start a nested one.
type Store interface {
	Therapists() Therapists
	Clinics() Clinics
	Patients() Patients
	Scenarios() Scenarios
	Scales() Scales
	Interventions() Interventions
	Evidence() Evidence
	Analytics() Analytics

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It is rolled back when fn
	// returns an error and committed otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Therapists interface {
	GetTherapistByID(ctx context.Context, id string) (domain.Therapist, error)

	// GetTherapistByEmail expects an already normalised email.
	GetTherapistByEmail(ctx context.Context, email string) (domain.Therapist, error)

	// CreateTherapist inserts a new therapist. A duplicate email yields
	// ErrAlreadyExists.
	CreateTherapist(ctx context.Context, t domain.Therapist) error

	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// SetClinic affiliates the therapist with a clinic.
	SetClinic(ctx context.Context, id, clinicID string, at time.Time) error

	// UpdateMFASecret stores a pending TOTP secret without enabling it.
	UpdateMFASecret(ctx context.Context, id, secret string, at time.Time) error

	// EnableMFA marks the stored secret as confirmed.
	EnableMFA(ctx context.Context, id string, at time.Time) error

	// DisableMFA clears both the secret and the enabled timestamp.
	DisableMFA(ctx context.Context, id string, at time.Time) error
}

type Clinics interface {
	CreateClinic(ctx context.Context, c domain.Clinic) error
	GetClinicByID(ctx context.Context, id string) (domain.Clinic, error)

	// ListVisibleClinics returns clinics the therapist belongs to or created,
	// newest first.
	ListVisibleClinics(ctx context.Context, therapistID string, clinicID *string) ([]domain.Clinic, error)

	// UpdateClinic applies a partial update, bumps updated_at and returns the
	// stored row.
	UpdateClinic(ctx context.Context, id string, upd domain.ClinicUpdate, at time.Time) (domain.Clinic, error)
}

// Patients are always addressed through their clinic so a read outside the
// caller's clinic is indistinguishable from a missing row.
type Patients interface {
	CreatePatient(ctx context.Context, p domain.Patient) error
	GetPatient(ctx context.Context, clinicID, id string) (domain.Patient, error)

	// ListPatients returns the clinic's patients, newest first.
	ListPatients(ctx context.Context, clinicID string) ([]domain.Patient, error)

	UpdatePatient(ctx context.Context, clinicID, id string, upd domain.PatientUpdate, at time.Time) (domain.Patient, error)
}

type Scenarios interface {
	CreateScenario(ctx context.Context, s domain.Scenario) error

	// GetScenario joins through the owning patient to enforce clinic scope.
	GetScenario(ctx context.Context, clinicID, id string) (domain.Scenario, error)

	// ListScenariosByPatient returns the patient's scenarios, newest first.
	ListScenariosByPatient(ctx context.Context, clinicID, patientID string) ([]domain.Scenario, error)

	UpdateScenario(ctx context.Context, clinicID, id string, upd domain.ScenarioUpdate, at time.Time) (domain.Scenario, error)
}

type Scales interface {
	// ListScales orders by category then name. An empty category lists all.
	ListScales(ctx context.Context, category string) ([]domain.AssessmentScale, error)
	GetScaleByID(ctx context.Context, id string) (domain.AssessmentScale, error)

	// GetScaleByAbbreviation matches case-insensitively.
	GetScaleByAbbreviation(ctx context.Context, abbr string) (domain.AssessmentScale, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Interventions interface {
	CreateIntervention(ctx context.Context, i domain.Intervention) error

	// ListRecentInterventions returns the newest interventions logged for
	// patients of the clinic.
	ListRecentInterventions(ctx context.Context, clinicID string, limit int) ([]domain.Intervention, error)
}

// Evidence is the persistent backing of the evidence cache.
type Evidence interface {
	// GetEvidence returns a live entry; expired rows are reported as ErrNotFound.
	GetEvidence(ctx context.Context, interventionType string, now time.Time) (domain.EvidenceEntry, error)

	// PutEvidence upserts an entry keyed by intervention type.
	PutEvidence(ctx context.Context, e domain.EvidenceEntry) error

	DeleteEvidence(ctx context.Context, interventionType string) error

	// DeleteExpiredEvidence is housekeeping.
	DeleteExpiredEvidence(ctx context.Context, now time.Time) (int64, error)

	// TrimEvidence keeps at most maxEntries rows, evicting the oldest fetched.
	TrimEvidence(ctx context.Context, maxEntries int) (int64, error)
}

type Analytics interface {
	Report(ctx context.Context, now time.Time) (domain.AnalyticsReport, error)
}
