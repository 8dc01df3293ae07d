package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const testIssuer = "clinic-test"

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newAuthService(t *testing.T, s *sqlite.Store) *service.AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	return &service.AuthService{
		Store:      s,
		Signer:     signer,
		Issuer:     testIssuer,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

// register creates a therapist through the auth service and returns it.
func register(t *testing.T, s *sqlite.Store, email string) domain.Therapist {
	t.Helper()

	res, err := newAuthService(t, s).Register(context.Background(), email, "correct-horse", "Ada", "Lovelace")
	require.NoError(t, err)
	return res.Therapist
}

// registerWithClinic registers a therapist and creates their clinic.
func registerWithClinic(t *testing.T, s *sqlite.Store, email string) (domain.Therapist, domain.Clinic) {
	t.Helper()

	th := register(t, s, email)
	svc := &service.ClinicService{Store: s}
	c, err := svc.Create(context.Background(), th.ID, domain.Clinic{Name: "Clinic of " + email})
	require.NoError(t, err)
	return th, c
}

func createPatient(t *testing.T, s *sqlite.Store, therapistID, firstName string) domain.Patient {
	t.Helper()

	svc := &service.PatientService{Store: s}
	p, err := svc.Create(context.Background(), therapistID, domain.Patient{
		Demographics: domain.Demographics{FirstName: firstName, LastName: "Doe"},
	})
	require.NoError(t, err)
	return p
}
