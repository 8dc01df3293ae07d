package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
)

func TestTOTPLifecycle(t *testing.T) {
	s := newTestStore(t)
	mfa := &service.MFAService{Store: s, Issuer: testIssuer}
	ctx := context.Background()

	th := register(t, s, "ada@example.com")

	require.ErrorIs(t, mfa.VerifyTOTP(ctx, th.ID, "123456"), service.ErrMFANotEnrolled)
	require.ErrorIs(t, mfa.DisableTOTP(ctx, th.ID, "123456"), service.ErrMFANotEnabled)

	enrol, err := mfa.EnrollTOTP(ctx, th.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrol.Secret)
	require.Contains(t, enrol.URL, "otpauth://totp/")
	require.Contains(t, enrol.URL, "ada@example.com")

	stored, err := s.Therapists().GetTherapistByID(ctx, th.ID)
	require.NoError(t, err)
	require.False(t, stored.MFAEnabled(), "enrolment alone must not enable MFA")

	require.ErrorIs(t, mfa.VerifyTOTP(ctx, th.ID, "000000"), service.ErrInvalidTOTPCode)

	code, err := totp.GenerateCode(enrol.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.VerifyTOTP(ctx, th.ID, code))

	stored, err = s.Therapists().GetTherapistByID(ctx, th.ID)
	require.NoError(t, err)
	require.True(t, stored.MFAEnabled())

	_, err = mfa.EnrollTOTP(ctx, th.ID)
	require.ErrorIs(t, err, service.ErrMFAAlreadyEnabled)
	require.ErrorIs(t, mfa.DisableTOTP(ctx, th.ID, "000000"), service.ErrInvalidTOTPCode)

	code, err = totp.GenerateCode(enrol.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.DisableTOTP(ctx, th.ID, code))

	stored, err = s.Therapists().GetTherapistByID(ctx, th.ID)
	require.NoError(t, err)
	require.False(t, stored.MFAEnabled())
	require.Nil(t, stored.MFASecret)
}

func TestEnrollReplacesPendingSecret(t *testing.T) {
	s := newTestStore(t)
	mfa := &service.MFAService{Store: s, Issuer: testIssuer}
	ctx := context.Background()

	th := register(t, s, "ada@example.com")
	first, err := mfa.EnrollTOTP(ctx, th.ID)
	require.NoError(t, err)
	second, err := mfa.EnrollTOTP(ctx, th.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	stored, err := s.Therapists().GetTherapistByID(ctx, th.ID)
	require.NoError(t, err)
	require.Equal(t, second.Secret, *stored.MFASecret)
}
