package clinicsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginAndAuthenticatedCall(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req clinicsdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ada@example.com", req.Email)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(clinicsdk.AuthResponse{Message: "Login successful", Token: "tok"})
	})
	mux.HandleFunc("GET /api/v1/patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(clinicsdk.PatientResponse{Patient: clinicsdk.Patient{PatientID: r.PathValue("id")}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := clinicsdk.NewClient(srv.URL + "/")
	session, err := client.Authenticate(context.Background(), clinicsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "tok", session.Token())

	got, err := session.GetPatient(context.Background(), "P1")
	require.NoError(t, err)
	require.Equal(t, "P1", got.Patient.PatientID)
}

func TestErrorResponsesBecomeAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"envelope", http.StatusNotFound, `{"error":"Patient not found"}`, "Patient not found"},
		{"not json", http.StatusBadGateway, `<html>`, "Bad Gateway"},
		{"empty envelope", http.StatusForbidden, `{}`, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := clinicsdk.NewClient(srv.URL).NewSession("tok").GetPatient(context.Background(), "x")

			var apiErr *clinicsdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.expected, apiErr.Message)
			require.True(t, clinicsdk.IsStatus(err, tt.status))
		})
	}
}

func TestAPIErrorWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	clinicsdk.NewAPIError(http.StatusConflict, "Therapist with this email already exists").WriteError(rec)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"Therapist with this email already exists"}`, rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestListScalesEncodesCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/assessment-scales", r.URL.Path)
		require.Equal(t, "substance use", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode(clinicsdk.ScaleListResponse{Count: 0, Scales: []clinicsdk.AssessmentScale{}})
	}))
	t.Cleanup(srv.Close)

	out, err := clinicsdk.NewClient(srv.URL).NewSession("tok").ListScales(context.Background(), "substance use")
	require.NoError(t, err)
	require.Zero(t, out.Count)
}

func TestNormalizeEmail(t *testing.T) {
	req := clinicsdk.RegisterRequest{Email: "  Ada@Example.COM ", FirstName: " Ada "}
	req.Normalize()
	require.Equal(t, "ada@example.com", req.Email)
	require.Equal(t, "Ada", req.FirstName)
}
