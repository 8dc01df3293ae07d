package service_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
)

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeder := &service.Seeder{
		Store:      s,
		BcryptCost: bcrypt.MinCost,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	}
	opts := service.SeedOptions{
		Email:         "demo@example.com",
		Password:      "demo-password",
		ClinicName:    "Demo Clinic",
		Patients:      3,
		Interventions: 20,
	}

	first, err := seeder.Seed(ctx, opts)
	require.NoError(t, err)
	require.True(t, first.TherapistCreated)
	require.Equal(t, 3, first.Patients)
	require.Equal(t, 20, first.Interventions)

	second, err := seeder.Seed(ctx, opts)
	require.NoError(t, err)
	require.Equal(t, first.TherapistID, second.TherapistID)
	require.False(t, second.TherapistCreated)
	require.Equal(t, first.ClinicID, second.ClinicID)
	require.Zero(t, second.Patients)
	require.Zero(t, second.Interventions)

	patients, err := s.Patients().ListPatients(ctx, first.ClinicID)
	require.NoError(t, err)
	require.Len(t, patients, 3)

	recent, err := s.Interventions().ListRecentInterventions(ctx, first.ClinicID, 50)
	require.NoError(t, err)
	require.Len(t, recent, 20)
	for _, iv := range recent {
		require.Contains(t, domain.InterventionTypes, iv.InterventionType)
		require.Contains(t, domain.InterventionSettings, iv.Setting)
		require.Equal(t, "therapeutic_communication", iv.InterventionCategory)
		require.NotNil(t, iv.DurationMinutes)
		require.GreaterOrEqual(t, *iv.DurationMinutes, 15)
		require.Less(t, *iv.DurationMinutes, 60)
		require.NotNil(t, iv.ResponseRating)
		require.GreaterOrEqual(t, *iv.ResponseRating, 3)
		require.LessOrEqual(t, *iv.ResponseRating, 5)
	}

	// The seeded therapist can sign in.
	_, err = newAuthService(t, s).Login(ctx, "demo@example.com", "demo-password", "")
	require.NoError(t, err)
}

func TestSeedRequiresCredentials(t *testing.T) {
	s := newTestStore(t)
	_, err := (&service.Seeder{Store: s}).Seed(context.Background(), service.SeedOptions{})
	require.Error(t, err)
}
