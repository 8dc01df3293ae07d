package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("k", jwtx.MinSecretBytes))

func signedToken(t *testing.T, perms []string, now time.Time) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewSessionClaims("01J0000000000000000000000A", "t@clinic.test", perms, []string{"pwd"}, time.Hour, "clinic", now))
	require.NoError(t, err)
	return tok
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("db exploded: password=hunter2")
	}), httpx.Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, httpx.MsgInternal, errorMessage(t, rec))
	require.NotContains(t, rec.Body.String(), "hunter2")
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(secret, "clinic")

	var seen httpx.Identity
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IdentityFrom(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusOK)
	}), httpx.AuthnMiddleware(verifier))

	tests := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"garbage token", "Bearer not-a-token", http.StatusForbidden, httpx.MsgTokenInvalid},
		{"expired token", "Bearer " + signedToken(t, nil, time.Now().Add(-2*time.Hour)), http.StatusForbidden, httpx.MsgTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			require.Equal(t, tt.message, errorMessage(t, rec))
		})
	}

	t.Run("valid token attaches identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, []string{"patients:read"}, time.Now()))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "01J0000000000000000000000A", seen.TherapistID)
		require.Equal(t, "t@clinic.test", seen.Email)
		require.Equal(t, []string{"patients:read"}, seen.Permissions)
	})
}

func TestRequirePermission(t *testing.T) {
	verifier := jwtx.NewVerifierHS256(secret, "clinic")
	h := httpx.Chain(okHandler(),
		httpx.AuthnMiddleware(verifier),
		httpx.RequirePermission("patients:write"),
	)

	t.Run("granted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, []string{"patients:read", "patients:write"}, time.Now()))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing permission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, []string{"patients:read"}, time.Now()))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, httpx.MsgForbidden, errorMessage(t, rec))
	})

	t.Run("without authentication", func(t *testing.T) {
		bare := httpx.Chain(okHandler(), httpx.RequirePermission("patients:write"))
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusConflict, "Therapist with this email already exists")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"Therapist with this email already exists"}`, rec.Body.String())
}
