package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/cryptox"
	"github.com/aussiebroadwan/clinic/pkg/idx"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrMFARequired means the password was right but the account needs a
	// TOTP code as well.
	ErrMFARequired = errors.New("mfa_required")
)

// AuthResult is what register and login hand back to the caller.
type AuthResult struct {
	Token     string
	Therapist domain.Therapist
}

type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Register creates a therapist and issues a session token. The email is
// expected to be normalised already.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Therapists().GetTherapistByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("lookup therapist: %w", err)
	}

	hash, err := cryptox.HashPassword(password, s.BcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	t := domain.Therapist{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleTherapist,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent registration can still reach the unique index.
	if err := s.Store.Therapists().CreateTherapist(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create therapist: %w", err)
	}

	token, err := s.MintToken(t, []string{"pwd"}, now)
	if err != nil {
		return AuthResult{}, err
	}

	l.Info("therapist registered", slog.String("therapist_id", t.ID))
	return AuthResult{Token: token, Therapist: t}, nil
}

// Login verifies credentials and, for enrolled therapists, a TOTP code. The
// second factor is only examined once the password has been accepted.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	t, err := s.Store.Therapists().GetTherapistByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordCheck(password)
			l.Info("login failed", slog.String("reason", "unknown_email"))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup therapist: %w", err)
	}

	if err := cryptox.VerifyPassword(password, t.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("therapist_id", t.ID), slog.Any("error", err))
		}
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("therapist_id", t.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	amr := []string{"pwd"}
	if t.MFAEnabled() {
		if totpCode == "" {
			return AuthResult{}, ErrMFARequired
		}
		if !totp.Validate(totpCode, *t.MFASecret) {
			l.Info("login failed", slog.String("reason", "bad_totp"), slog.String("therapist_id", t.ID))
			return AuthResult{}, ErrInvalidTOTPCode
		}
		amr = append(amr, "otp")
	}

	now := time.Now().UTC()
	if err := s.Store.Therapists().UpdateLastLogin(ctx, t.ID, now); err != nil {
		return AuthResult{}, fmt.Errorf("update last login: %w", err)
	}
	t.LastLogin = &now

	token, err := s.MintToken(t, amr, now)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, Therapist: t}, nil
}

// Me returns the authenticated therapist.
func (s *AuthService) Me(ctx context.Context, therapistID string) (domain.Therapist, error) {
	return caller(ctx, s.Store, therapistID)
}

// MintToken signs a session token carrying the therapist's role permissions.
func (s *AuthService) MintToken(t domain.Therapist, amr []string, now time.Time) (string, error) {
	claims := jwtx.NewSessionClaims(
		t.ID,
		t.Email,
		domain.PermissionsForRole(t.Role),
		amr,
		s.TokenTTL,
		s.Issuer,
		now,
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck runs one bcrypt comparison for an unknown email, matching
// the cost of the known-email path.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = cryptox.HashPassword("not-a-real-password", cryptox.DefaultCost)
	})
	if len(password) > cryptox.MaxPasswordBytes {
		password = password[:cryptox.MaxPasswordBytes]
	}
	_ = cryptox.VerifyPassword(password, dummyHash)
}
