package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

type ScenarioService struct {
	Store store.Store
}

// Create records a scenario for a patient in the caller's clinic. A patient
// outside the clinic is reported as ErrPatientNotFound.
func (s *ScenarioService) Create(ctx context.Context, therapistID string, sc domain.Scenario) (domain.Scenario, error) {
	clinicID, err := callerClinic(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Scenario{}, err
	}

	if _, err := s.Store.Patients().GetPatient(ctx, clinicID, sc.PatientID); err != nil {
		return domain.Scenario{}, notFound(err, ErrPatientNotFound)
	}

	now := time.Now().UTC()
	sc.ID = idx.New().String()
	sc.TherapistID = therapistID
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if sc.SessionNumber < 1 {
		sc.SessionNumber = 1
	}

	if err := s.Store.Scenarios().CreateScenario(ctx, sc); err != nil {
		return domain.Scenario{}, fmt.Errorf("create scenario: %w", err)
	}
	return s.Store.Scenarios().GetScenario(ctx, clinicID, sc.ID)
}

func (s *ScenarioService) Get(ctx context.Context, therapistID, scenarioID string) (domain.Scenario, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Scenario{}, err
	}
	if !ok {
		return domain.Scenario{}, ErrScenarioNotFound
	}

	sc, err := s.Store.Scenarios().GetScenario(ctx, clinicID, scenarioID)
	if err != nil {
		return domain.Scenario{}, notFound(err, ErrScenarioNotFound)
	}
	return sc, nil
}

// ListByPatient returns the patient's scenarios newest first.
func (s *ScenarioService) ListByPatient(ctx context.Context, therapistID, patientID string) ([]domain.Scenario, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPatientNotFound
	}

	if _, err := s.Store.Patients().GetPatient(ctx, clinicID, patientID); err != nil {
		return nil, notFound(err, ErrPatientNotFound)
	}
	return s.Store.Scenarios().ListScenariosByPatient(ctx, clinicID, patientID)
}

func (s *ScenarioService) Update(ctx context.Context, therapistID, scenarioID string, upd domain.ScenarioUpdate) (domain.Scenario, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Scenario{}, err
	}
	if !ok {
		return domain.Scenario{}, ErrScenarioNotFound
	}

	sc, err := s.Store.Scenarios().UpdateScenario(ctx, clinicID, scenarioID, upd, time.Now().UTC())
	if err != nil {
		return domain.Scenario{}, notFound(err, ErrScenarioNotFound)
	}
	return sc, nil
}
