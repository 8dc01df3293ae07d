package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the fixed lifetime of a therapist session token.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims. TherapistID mirrors the registered
// subject so downstream consumers can read either.
type Claims struct {
	jwt.RegisteredClaims

	TherapistID string `json:"therapist_id"`
	Email       string `json:"email"`

	// Permissions granted at mint time, e.g. "patients:read". The
	// authorization middleware only ever consults this list.
	Permissions []string `json:"permissions,omitempty"`

	// Authentication Methods Reference ["pwd"] or ["pwd","otp"]. Handy when
	// reading logs to see whether a session came through step-up MFA.
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a therapist session.
func NewSessionClaims(
	therapistID, email string,
	permissions, amr []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   therapistID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TherapistID: therapistID,
		Email:       email,
		Permissions: permissions,
		AMR:         amr,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasPermission reports whether p was granted.
func (c *Claims) HasPermission(p string) bool {
	return slices.Contains(c.Permissions, p)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateSubject makes sure the token names a therapist and both copies of
// the id agree.
func (c *Claims) ValidateSubject() error {
	if c.TherapistID == "" || c.Subject != c.TherapistID {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
