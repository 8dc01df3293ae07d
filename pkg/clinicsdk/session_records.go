package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Clinics
// ============================================================================

func (s *Session) CreateClinic(ctx context.Context, req CreateClinicRequest) (*ClinicResponse, error) {
	var out ClinicResponse
	if err := s.call(ctx, http.MethodPost, "/clinics", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListClinics(ctx context.Context) (*ClinicListResponse, error) {
	var out ClinicListResponse
	if err := s.call(ctx, http.MethodGet, "/clinics", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetClinic(ctx context.Context, id string) (*ClinicResponse, error) {
	var out ClinicResponse
	if err := s.call(ctx, http.MethodGet, "/clinics/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateClinic(ctx context.Context, id string, req UpdateClinicRequest) (*ClinicResponse, error) {
	var out ClinicResponse
	if err := s.call(ctx, http.MethodPut, "/clinics/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Patients
// ============================================================================

func (s *Session) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	var out PatientResponse
	if err := s.call(ctx, http.MethodPost, "/patients", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListPatients(ctx context.Context) (*PatientListResponse, error) {
	var out PatientListResponse
	if err := s.call(ctx, http.MethodGet, "/patients", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	var out PatientResponse
	if err := s.call(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	var out PatientResponse
	if err := s.call(ctx, http.MethodPut, "/patients/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPatientScenarios uses the patient-rooted route.
func (s *Session) ListPatientScenarios(ctx context.Context, patientID string) (*ScenarioListResponse, error) {
	var out ScenarioListResponse
	if err := s.call(ctx, http.MethodGet, "/patients/"+url.PathEscape(patientID)+"/scenarios", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Clinical scenarios
// ============================================================================

func (s *Session) CreateScenario(ctx context.Context, req CreateScenarioRequest) (*ScenarioResponse, error) {
	var out ScenarioResponse
	if err := s.call(ctx, http.MethodPost, "/scenarios", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetScenario(ctx context.Context, id string) (*ScenarioResponse, error) {
	var out ScenarioResponse
	if err := s.call(ctx, http.MethodGet, "/scenarios/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListScenariosByPatient uses the scenario-rooted route.
func (s *Session) ListScenariosByPatient(ctx context.Context, patientID string) (*ScenarioListResponse, error) {
	var out ScenarioListResponse
	if err := s.call(ctx, http.MethodGet, "/scenarios/patient/"+url.PathEscape(patientID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateScenario(ctx context.Context, id string, req UpdateScenarioRequest) (*ScenarioResponse, error) {
	var out ScenarioResponse
	if err := s.call(ctx, http.MethodPut, "/scenarios/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
