package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinic/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedTherapist(t *testing.T, s *sqlite.Store, email string) domain.Therapist {
	t.Helper()

	th := domain.Therapist{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         domain.RoleTherapist,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	require.NoError(t, s.Therapists().CreateTherapist(context.Background(), th))
	return th
}

func seedClinic(t *testing.T, s *sqlite.Store, owner domain.Therapist) domain.Clinic {
	t.Helper()
	ctx := context.Background()

	c := domain.Clinic{
		ID:   idx.New().String(),
		Name: "Harbour Clinic",
		Address: domain.Address{
			Street:  "1 Circular Quay",
			City:    "Sydney",
			State:   "NSW",
			Zip:     "2000",
			Country: "AU",
		},
		CreatedBy: owner.ID,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	require.NoError(t, s.Clinics().CreateClinic(ctx, c))
	require.NoError(t, s.Therapists().SetClinic(ctx, owner.ID, c.ID, baseTime))
	return c
}

func seedPatient(t *testing.T, s *sqlite.Store, clinicID string, at time.Time) domain.Patient {
	t.Helper()

	p := domain.Patient{
		ID:       idx.NewAt(at).String(),
		ClinicID: clinicID,
		Demographics: domain.Demographics{
			FirstName: "Grace",
			LastName:  "Hopper",
			Gender:    "female",
		},
		ClinicalProfile: domain.ClinicalProfile{DSM5Codes: []string{"F32.1"}},
		CreatedAt:       at,
		UpdatedAt:       at,
	}
	require.NoError(t, s.Patients().CreatePatient(context.Background(), p))
	return p
}
