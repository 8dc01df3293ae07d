package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func TestPermissionsForRole(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		has      []domain.Permission
		hasNot   []domain.Permission
		expected int
	}{
		{
			name:     "therapist gets everything",
			role:     domain.RoleTherapist,
			has:      []domain.Permission{domain.PermPatientsWrite, domain.PermEvidenceWrite, domain.PermScalesRead},
			expected: 11,
		},
		{
			name:     "observer only reads",
			role:     domain.RoleObserver,
			has:      []domain.Permission{domain.PermPatientsRead, domain.PermScenariosRead},
			hasNot:   []domain.Permission{domain.PermPatientsWrite, domain.PermClinicsWrite, domain.PermEvidenceWrite},
			expected: 6,
		},
		{
			name:     "unknown role",
			role:     domain.Role("admin"),
			hasNot:   []domain.Permission{domain.PermPatientsRead},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := domain.PermissionsForRole(tt.role)
			require.Len(t, perms, tt.expected)
			for _, p := range tt.has {
				require.Contains(t, perms, p)
			}
			for _, p := range tt.hasNot {
				require.NotContains(t, perms, p)
			}
		})
	}
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := domain.PermissionsForRole(domain.RoleObserver)
	perms[0] = "tampered"
	require.Equal(t, domain.PermClinicsRead, domain.PermissionsForRole(domain.RoleObserver)[0])
}

func TestTherapistHelpers(t *testing.T) {
	clinicID := "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"
	secret := "JBSWY3DPEHPK3PXP"

	var th domain.Therapist
	require.False(t, th.HasClinic())
	require.False(t, th.MFAEnabled())

	th.ClinicID = &clinicID
	th.MFASecret = &secret
	require.True(t, th.HasClinic())
	require.False(t, th.MFAEnabled(), "secret alone is not enrolment")
}

func TestEvidenceEntryExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{"no expiry", time.Time{}, false},
		{"future", now.Add(time.Minute), false},
		{"exactly now", now, true},
		{"past", now.Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.EvidenceEntry{ExpiresAt: tt.expiresAt}
			require.Equal(t, tt.expected, e.Expired(now))
		})
	}
}
