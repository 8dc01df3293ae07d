package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/cryptox"
	"github.com/aussiebroadwan/clinic/pkg/idx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// SeedOptions describes the demo data set.
type SeedOptions struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	ClinicName    string
	Patients      int
	Interventions int
}

// SeedResult reports what Seed created. Rows that already existed are
// counted as zero.
type SeedResult struct {
	TherapistID      string
	TherapistCreated bool
	ClinicID         string
	Patients         int
	Interventions    int
}

var demoPatients = []domain.Demographics{
	{FirstName: "Alex", LastName: "Morgan", DateOfBirth: "1988-04-12", Gender: "non-binary"},
	{FirstName: "Jamie", LastName: "Chen", DateOfBirth: "1975-11-02", Gender: "female"},
	{FirstName: "Sam", LastName: "Okafor", DateOfBirth: "1999-07-21", Gender: "male"},
	{FirstName: "Riley", LastName: "Nguyen", DateOfBirth: "1992-01-30", Gender: "prefer_not_to_say"},
}

// Seeder loads demo data. Running it twice against the same database leaves
// a single therapist, clinic and set of patients.
type Seeder struct {
	Store      store.Store
	BcryptCost int

	// Rand drives intervention generation. Nil uses a time seeded source.
	Rand *rand.Rand
}

func (s *Seeder) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return s.Rand
}

func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	if opts.Email == "" || opts.Password == "" {
		return SeedResult{}, errors.New("seed: email and password are required")
	}
	if opts.ClinicName == "" {
		opts.ClinicName = "Demo Clinic"
	}

	var res SeedResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, created, err := s.ensureTherapist(ctx, tx, opts, now)
		if err != nil {
			return err
		}
		res.TherapistID = t.ID
		res.TherapistCreated = created

		clinicID, err := s.ensureClinic(ctx, tx, t, opts.ClinicName, now)
		if err != nil {
			return err
		}
		res.ClinicID = clinicID

		patients, err := tx.Patients().ListPatients(ctx, clinicID)
		if err != nil {
			return fmt.Errorf("list patients: %w", err)
		}
		for i := len(patients); i < opts.Patients; i++ {
			p := domain.Patient{
				ID:           idx.NewAt(now).String(),
				ClinicID:     clinicID,
				Demographics: demoPatients[i%len(demoPatients)],
				Status:       domain.PatientStatusActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Patients().CreatePatient(ctx, p); err != nil {
				return fmt.Errorf("create patient: %w", err)
			}
			patients = append(patients, p)
			res.Patients++
		}

		if len(patients) == 0 || opts.Interventions <= 0 {
			return nil
		}

		existing, err := tx.Interventions().ListRecentInterventions(ctx, clinicID, 1)
		if err != nil {
			return fmt.Errorf("list interventions: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}

		r := s.rng()
		for i := range opts.Interventions {
			iv := randomIntervention(r, patients[r.IntN(len(patients))].ID, t.ID, i, now)
			if err := tx.Interventions().CreateIntervention(ctx, iv); err != nil {
				return fmt.Errorf("create intervention: %w", err)
			}
			res.Interventions++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	l.Info("seed complete",
		slog.String("therapist_id", res.TherapistID),
		slog.String("clinic_id", res.ClinicID),
		slog.Int("patients", res.Patients),
		slog.Int("interventions", res.Interventions),
	)
	return res, nil
}

func (s *Seeder) ensureTherapist(ctx context.Context, tx store.Tx, opts SeedOptions, now time.Time) (domain.Therapist, bool, error) {
	t, err := tx.Therapists().GetTherapistByEmail(ctx, opts.Email)
	if err == nil {
		return t, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Therapist{}, false, fmt.Errorf("lookup therapist: %w", err)
	}

	hash, err := cryptox.HashPassword(opts.Password, s.BcryptCost)
	if err != nil {
		return domain.Therapist{}, false, fmt.Errorf("hash password: %w", err)
	}

	t = domain.Therapist{
		ID:           idx.NewAt(now).String(),
		Email:        opts.Email,
		PasswordHash: hash,
		FirstName:    opts.FirstName,
		LastName:     opts.LastName,
		Role:         domain.RoleTherapist,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Therapists().CreateTherapist(ctx, t); err != nil {
		return domain.Therapist{}, false, fmt.Errorf("create therapist: %w", err)
	}
	return t, true, nil
}

func (s *Seeder) ensureClinic(ctx context.Context, tx store.Tx, t domain.Therapist, name string, now time.Time) (string, error) {
	if t.HasClinic() {
		return *t.ClinicID, nil
	}

	c := domain.Clinic{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		Status:    domain.ClinicStatusActive,
		CreatedBy: t.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Clinics().CreateClinic(ctx, c); err != nil {
		return "", fmt.Errorf("create clinic: %w", err)
	}
	if err := tx.Therapists().SetClinic(ctx, t.ID, c.ID, now); err != nil {
		return "", fmt.Errorf("enrol therapist: %w", err)
	}
	return c.ID, nil
}

// randomIntervention spreads entries over the past week with a duration of
// 15-59 minutes and a rating of 3-5.
func randomIntervention(r *rand.Rand, patientID, therapistID string, n int, now time.Time) domain.Intervention {
	duration := 15 + r.IntN(45)
	rating := 3 + r.IntN(3)
	at := now.AddDate(0, 0, -r.IntN(7))

	return domain.Intervention{
		ID:                   idx.NewAt(at).String(),
		PatientID:            patientID,
		TherapistID:          therapistID,
		InterventionType:     domain.InterventionTypes[r.IntN(len(domain.InterventionTypes))],
		InterventionCategory: "therapeutic_communication",
		DurationMinutes:      &duration,
		Setting:              domain.InterventionSettings[r.IntN(len(domain.InterventionSettings))],
		ResponseRating:       &rating,
		Notes:                fmt.Sprintf("Sample intervention %d", n+1),
		CreatedAt:            at,
	}
}
