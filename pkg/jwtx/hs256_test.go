package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("s", jwtx.MinSecretBytes))

func mint(t *testing.T, now time.Time, ttl time.Duration) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("01J0000000000000000000000A", "a@b.test",
		[]string{"clinics:read"}, []string{"pwd"}, ttl, "clinic", now)
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestNewSignerHS256_RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256RoundTrip(t *testing.T) {
	token := mint(t, time.Now().UTC(), time.Hour)

	claims, err := jwtx.NewVerifierHS256(testSecret, "clinic").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01J0000000000000000000000A", claims.TherapistID)
	require.Equal(t, "a@b.test", claims.Email)
	require.Equal(t, []string{"clinics:read"}, claims.Permissions)
}

func TestHS256Verify_Failures(t *testing.T) {
	now := time.Now().UTC()
	valid := mint(t, now, time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := []byte(strings.Repeat("x", jwtx.MinSecretBytes))
		_, err := jwtx.NewVerifierHS256(other, "").Verify(valid)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := jwtx.NewVerifierHS256(testSecret, "elsewhere").Verify(valid)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		old := mint(t, now.Add(-48*time.Hour), 24*time.Hour)
		_, err := jwtx.NewVerifierHS256(testSecret, "clinic").Verify(old)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifierHS256(testSecret, "clinic").Verify("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]
		_, err := jwtx.NewVerifierHS256(testSecret, "clinic").Verify(tampered)
		require.Error(t, err)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("01J0000000000000000000000A", "a@b.test", nil, nil, time.Hour, "clinic", now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(testSecret)
		require.NoError(t, err)

		_, err = jwtx.NewVerifierHS256(testSecret, "clinic").Verify(tok)
		require.Error(t, err)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("01J0000000000000000000000A", "a@b.test", nil, nil, time.Hour, "clinic", now)
		claims.ExpiresAt = nil
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)
		_, err = jwtx.NewVerifierHS256(testSecret, "clinic").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}
