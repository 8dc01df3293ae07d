package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/aussiebroadwan/clinic/internal/clinic/store"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this therapist")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this therapist")
)

// TOTPEnrollment is returned when a therapist starts enrolment.
type TOTPEnrollment struct {
	Secret string
	URL    string // otpauth:// URL for QR rendering
}

type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps
}

// EnrollTOTP generates and stores a pending secret. MFA is not enforced until
// VerifyTOTP confirms the therapist can produce codes. Enrolling again before
// verification replaces the pending secret.
func (s *MFAService) EnrollTOTP(ctx context.Context, therapistID string) (TOTPEnrollment, error) {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return TOTPEnrollment{}, err
	}
	if t.MFAEnabled() {
		return TOTPEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: t.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("generate TOTP key: %w", err)
	}

	if err := s.Store.Therapists().UpdateMFASecret(ctx, t.ID, key.Secret(), time.Now().UTC()); err != nil {
		return TOTPEnrollment{}, fmt.Errorf("store MFA secret: %w", err)
	}

	return TOTPEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyTOTP checks a code against the pending secret and enables MFA.
func (s *MFAService) VerifyTOTP(ctx context.Context, therapistID, code string) error {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return err
	}
	if t.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}
	if t.MFASecret == nil || *t.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, *t.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Therapists().EnableMFA(ctx, t.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("enable MFA: %w", err)
	}
	return nil
}

// DisableTOTP removes the second factor after checking a current code.
func (s *MFAService) DisableTOTP(ctx context.Context, therapistID, code string) error {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return err
	}
	if !t.MFAEnabled() {
		return ErrMFANotEnabled
	}
	if !totp.Validate(code, *t.MFASecret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Therapists().DisableMFA(ctx, t.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("disable MFA: %w", err)
	}
	return nil
}
