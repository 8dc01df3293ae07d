package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/evidence"
	clinichttp "github.com/aussiebroadwan/clinic/internal/clinic/http"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

var testSecret = []byte(strings.Repeat("s", jwtx.MinSecretBytes))

const testIssuer = "clinic-test"

// relaxed keeps the limiter out of the way of multi-step flows.
var relaxed = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}

type testServer struct {
	URL    string
	Store  *sqlite.Store
	Client *clinicsdk.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, testIssuer)

	limits := httpx.RateLimitProfiles{Strict: relaxed, Moderate: relaxed, Lenient: relaxed, Public: relaxed}
	r := clinichttp.NewRouter(verifier, limits, "test", st, slogx.Discard())
	r.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     testIssuer,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	r.MFAService = &service.MFAService{Store: st, Issuer: "Clinic"}
	r.ClinicService = &service.ClinicService{Store: st}
	r.PatientService = &service.PatientService{Store: st}
	r.ScenarioService = &service.ScenarioService{Store: st}
	r.ScaleService = &service.ScaleService{Store: st}
	r.InterventionService = &service.InterventionService{Store: st}
	r.EvidenceService = &service.EvidenceService{
		Cache:    &evidence.SQLiteCache{Store: st},
		Summary:  evidence.StaticSummary,
		Evidence: evidence.StaticEvidence,
		TTL:      time.Hour,
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Store: st, Client: clinicsdk.NewClient(srv.URL)}
}

// signup registers a therapist and returns an authenticated session.
func (s *testServer) signup(t *testing.T, email string) *clinicsdk.Session {
	t.Helper()

	res, err := s.Client.Register(context.Background(), clinicsdk.RegisterRequest{
		Email:     email,
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return s.Client.NewSession(res.Token)
}

// signupWithClinic registers a therapist and enrols them in a new clinic.
func (s *testServer) signupWithClinic(t *testing.T, email string) (*clinicsdk.Session, clinicsdk.Clinic) {
	t.Helper()

	sess := s.signup(t, email)
	res, err := sess.CreateClinic(context.Background(), clinicsdk.CreateClinicRequest{Name: "Clinic of " + email})
	require.NoError(t, err)
	return sess, res.Clinic
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func errorOf(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func newPatientRequest(firstName string) clinicsdk.CreatePatientRequest {
	return clinicsdk.CreatePatientRequest{
		Demographics:    &clinicsdk.Demographics{FirstName: firstName, LastName: "Doe"},
		ClinicalProfile: &clinicsdk.ClinicalProfile{DSM5Codes: []string{"F32.1"}},
	}
}

func TestAuthnFailures(t *testing.T) {
	srv := newTestServer(t)

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	observer, err := signer.Sign(jwtx.NewSessionClaims(
		"01J0000000000000000000000A", "obs@clinic.test",
		domain.PermissionsForRole(domain.RoleObserver), []string{"pwd"},
		time.Hour, testIssuer, time.Now(),
	))
	require.NoError(t, err)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"missing token", http.MethodGet, "/api/v1/patients", "", http.StatusUnauthorized, httpx.MsgTokenRequired},
		{"garbage token", http.MethodGet, "/api/v1/patients", "not-a-jwt", http.StatusForbidden, httpx.MsgTokenInvalid},
		{"observer cannot write", http.MethodPost, "/api/v1/clinics", observer, http.StatusForbidden, httpx.MsgForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, tt.method, tt.path, tt.token, `{"name":"x"}`)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Equal(t, tt.message, errorOf(t, resp))
		})
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	res, err := srv.Client.Register(ctx, clinicsdk.RegisterRequest{
		Email:    "  Ada@Clinic.Test ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, "Therapist registered successfully", res.Message)
	require.Equal(t, "ada@clinic.test", res.Therapist.Email)
	require.Nil(t, res.Therapist.ClinicID)

	_, err = srv.Client.Register(ctx, clinicsdk.RegisterRequest{Email: "ada@clinic.test", Password: "another-pass"})
	require.True(t, clinicsdk.IsStatus(err, http.StatusConflict))

	_, err = srv.Client.Login(ctx, clinicsdk.LoginRequest{Email: "ada@clinic.test", Password: "wrong-horse"})
	require.True(t, clinicsdk.IsStatus(err, http.StatusUnauthorized))

	sess, err := srv.Client.Authenticate(ctx, clinicsdk.LoginRequest{Email: "ADA@clinic.test", Password: "correct-horse"})
	require.NoError(t, err)

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, res.Therapist.TherapistID, me.TherapistID)
	require.NotNil(t, me.LastLogin)

	out, err := sess.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, "Logout successful", out.Message)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"bad email", `{"email":"nope","password":"correct-horse"}`},
		{"short password", `{"email":"a@clinic.test","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.NotEmpty(t, errorOf(t, resp))
		})
	}
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	srv := newTestServer(t)

	// 40 runes fit the character bound but encode to 80 bytes.
	body := `{"email":"a@clinic.test","password":"` + strings.Repeat("é", 40) + `"}`
	resp := srv.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `"password" length must be less than or equal to 72 bytes long`, errorOf(t, resp))

	resp = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordsFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	sess := srv.signup(t, "ada@clinic.test")

	// No clinic yet: reads are empty, writes conflict.
	empty, err := sess.ListPatients(ctx)
	require.NoError(t, err)
	require.Zero(t, empty.Count)
	require.NotNil(t, empty.Patients)

	_, err = sess.CreatePatient(ctx, newPatientRequest("Grace"))
	require.True(t, clinicsdk.IsStatus(err, http.StatusConflict))

	address := clinicsdk.Address{
		Street:  "1 Circular Quay",
		City:    "Sydney",
		State:   "NSW",
		Zip:     "2000",
		Country: "AU",
	}
	clinic, err := sess.CreateClinic(ctx, clinicsdk.CreateClinicRequest{
		Name:    "Harbour Psychology",
		Address: &address,
	})
	require.NoError(t, err)
	require.Equal(t, "Clinic created successfully", clinic.Message)
	require.Equal(t, "active", clinic.Clinic.Status)

	fetched, err := sess.GetClinic(ctx, clinic.Clinic.ClinicID)
	require.NoError(t, err)
	require.Equal(t, address, fetched.Clinic.Address)

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.ClinicID)
	require.Equal(t, clinic.Clinic.ClinicID, *me.ClinicID)

	req := newPatientRequest("Grace")
	req.Demographics.DateOfBirth = "1990-04-12"
	req.Demographics.Gender = "female"
	req.ClinicalProfile.CurrentMedications = []string{"sertraline"}
	req.CurrentPresentations = map[string]any{"mood": "low"}
	req.Preferences = map[string]any{"language": "en"}
	patient, err := sess.CreatePatient(ctx, req)
	require.NoError(t, err)
	require.Equal(t, clinic.Clinic.ClinicID, patient.Patient.ClinicID)
	require.Equal(t, "active", patient.Patient.Status)
	require.Equal(t, []string{"F32.1"}, patient.Patient.ClinicalProfile.DSM5Codes)
	require.Equal(t, []string{"sertraline"}, patient.Patient.ClinicalProfile.CurrentMedications)

	status := "discharged"
	updated, err := sess.UpdatePatient(ctx, patient.Patient.PatientID, clinicsdk.UpdatePatientRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "discharged", updated.Patient.Status)
	require.False(t, updated.Patient.UpdatedAt.Before(patient.Patient.UpdatedAt))

	// Only status and updated_at move.
	want := patient.Patient
	want.Status = "discharged"
	want.UpdatedAt = updated.Patient.UpdatedAt
	require.Equal(t, want, updated.Patient)

	stored, err := sess.GetPatient(ctx, patient.Patient.PatientID)
	require.NoError(t, err)
	require.Equal(t, want, stored.Patient)

	list, err := sess.ListPatients(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)

	scenario, err := sess.CreateScenario(ctx, clinicsdk.CreateScenarioRequest{
		PatientID:    patient.Patient.PatientID,
		ScenarioType: "free_text",
		RawInput:     "Low mood for three weeks",
	})
	require.NoError(t, err)
	require.Equal(t, "Clinical scenario created successfully", scenario.Message)
	require.Equal(t, 1, scenario.Scenario.SessionNumber)
	require.Equal(t, me.TherapistID, scenario.Scenario.TherapistID)

	notes := "Reviewed with supervisor"
	revised, err := sess.UpdateScenario(ctx, scenario.Scenario.ScenarioID, clinicsdk.UpdateScenarioRequest{
		ProviderNotes: &notes,
		UrgentFlags:   []string{"sleep"},
	})
	require.NoError(t, err)
	require.Equal(t, notes, revised.Scenario.ProviderNotes)
	require.Equal(t, []string{"sleep"}, revised.Scenario.UrgentFlags)

	byPatient, err := sess.ListPatientScenarios(ctx, patient.Patient.PatientID)
	require.NoError(t, err)
	require.Equal(t, 1, byPatient.Count)

	byRoute, err := sess.ListScenariosByPatient(ctx, patient.Patient.PatientID)
	require.NoError(t, err)
	require.Equal(t, byPatient.Scenarios[0].ScenarioID, byRoute.Scenarios[0].ScenarioID)

	duration := 30
	logged, err := sess.QuickLogIntervention(ctx, clinicsdk.QuickLogRequest{
		PatientID:        patient.Patient.PatientID,
		InterventionType: "CBT",
		DurationMinutes:  &duration,
	})
	require.NoError(t, err)
	require.Equal(t, "Intervention logged successfully", logged.Message)

	recent, err := sess.RecentInterventions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, recent.Count)
	require.Equal(t, "CBT", recent.Interventions[0].InterventionType)
}

func TestScenarioValidation(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	sess, _ := srv.signupWithClinic(t, "ada@clinic.test")
	patient, err := sess.CreatePatient(ctx, newPatientRequest("Grace"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		req    clinicsdk.CreateScenarioRequest
		status int
	}{
		{
			name:   "free text needs raw input",
			req:    clinicsdk.CreateScenarioRequest{PatientID: patient.Patient.PatientID, ScenarioType: "free_text"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown type",
			req:    clinicsdk.CreateScenarioRequest{PatientID: patient.Patient.PatientID, ScenarioType: "dream"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown patient",
			req:    clinicsdk.CreateScenarioRequest{PatientID: "01J0000000000000000000000Z", ScenarioType: "import"},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sess.CreateScenario(ctx, tt.req)
			require.True(t, clinicsdk.IsStatus(err, tt.status), "got %v", err)
		})
	}
}

func TestCrossClinicIsolation(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ada, adaClinic := srv.signupWithClinic(t, "ada@clinic.test")
	bob, _ := srv.signupWithClinic(t, "bob@clinic.test")

	patient, err := ada.CreatePatient(ctx, newPatientRequest("Grace"))
	require.NoError(t, err)

	_, err = bob.GetPatient(ctx, patient.Patient.PatientID)
	require.True(t, clinicsdk.IsStatus(err, http.StatusNotFound))

	_, err = bob.GetClinic(ctx, adaClinic.ClinicID)
	require.True(t, clinicsdk.IsStatus(err, http.StatusNotFound))

	_, err = bob.QuickLogIntervention(ctx, clinicsdk.QuickLogRequest{
		PatientID:        patient.Patient.PatientID,
		InterventionType: "CBT",
	})
	require.True(t, clinicsdk.IsStatus(err, http.StatusNotFound))

	list, err := bob.ListPatients(ctx)
	require.NoError(t, err)
	require.Zero(t, list.Count)
	require.NotNil(t, list.Patients)
}

func TestUnaffiliatedReadsLookMissing(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ada, _ := srv.signupWithClinic(t, "ada@clinic.test")
	patient, err := ada.CreatePatient(ctx, newPatientRequest("Grace"))
	require.NoError(t, err)
	scenario, err := ada.CreateScenario(ctx, clinicsdk.CreateScenarioRequest{
		PatientID:    patient.Patient.PatientID,
		ScenarioType: "import",
	})
	require.NoError(t, err)

	drifter := srv.signup(t, "drifter@clinic.test")
	patientPath := "/api/v1/patients/" + patient.Patient.PatientID

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"get patient", http.MethodGet, patientPath, "", "Patient not found"},
		{"update patient", http.MethodPut, patientPath, `{"status":"inactive"}`, "Patient not found"},
		{"patient scenarios", http.MethodGet, patientPath + "/scenarios", "", "Patient not found"},
		{"scenarios by patient", http.MethodGet, "/api/v1/scenarios/patient/" + patient.Patient.PatientID, "", "Patient not found"},
		{"get scenario", http.MethodGet, "/api/v1/scenarios/" + scenario.Scenario.ScenarioID, "", "Scenario not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, tt.method, tt.path, drifter.Token(), tt.body)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
			require.Equal(t, tt.message, errorOf(t, resp))
		})
	}

	list, err := drifter.ListPatients(ctx)
	require.NoError(t, err)
	require.Zero(t, list.Count)

	recent, err := drifter.RecentInterventions(ctx)
	require.NoError(t, err)
	require.Zero(t, recent.Count)
}

func TestMalformedPathID(t *testing.T) {
	srv := newTestServer(t)
	sess, _ := srv.signupWithClinic(t, "ada@clinic.test")

	resp := srv.do(t, http.MethodGet, "/api/v1/patients/42", sess.Token(), "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Patient not found", errorOf(t, resp))
}

func TestAssessmentScales(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	sess := srv.signup(t, "ada@clinic.test")

	all, err := sess.ListScales(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 12, all.Count)

	depression, err := sess.ListScalesByCategory(ctx, "Depression")
	require.NoError(t, err)
	require.Equal(t, "depression", depression.Category)
	require.Equal(t, 3, depression.Count)

	phq, err := sess.GetScaleByAbbreviation(ctx, "phq-9")
	require.NoError(t, err)
	require.Equal(t, "PHQ-9", phq.Scale.Abbreviation)

	byID, err := sess.GetScale(ctx, phq.Scale.ScaleID)
	require.NoError(t, err)
	require.Equal(t, phq.Scale, byID.Scale)

	cats, err := sess.ListScaleCategories(ctx)
	require.NoError(t, err)
	require.Contains(t, cats.Categories, "depression")

	_, err = sess.GetScaleByAbbreviation(ctx, "nope")
	require.True(t, clinicsdk.IsStatus(err, http.StatusNotFound))
}

func TestEvidenceReadThrough(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	sess := srv.signup(t, "ada@clinic.test")

	first, err := sess.GetEvidence(ctx, "CBT")
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, "Summary for CBT", first.Summary)
	require.Equal(t, "Evidence result for CBT", first.Evidence)
	require.True(t, first.ExpiresAt.After(first.FetchedAt))

	second, err := sess.GetEvidence(ctx, "CBT")
	require.NoError(t, err)
	require.True(t, second.Cached)

	_, err = sess.InvalidateEvidence(ctx, "CBT")
	require.NoError(t, err)

	third, err := sess.GetEvidence(ctx, "CBT")
	require.NoError(t, err)
	require.False(t, third.Cached)

	resp := srv.do(t, http.MethodGet, "/api/v1/evidence/%20", sess.Token(), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndFallback(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	live, err := srv.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)

	resp := srv.do(t, http.MethodGet, "/api/v1/nothing-here", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, httpx.MsgNotFound, errorOf(t, resp))

	require.NoError(t, srv.Store.Close())
	resp = srv.do(t, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
