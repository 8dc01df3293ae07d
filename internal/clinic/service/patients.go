package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

// PatientService scopes every operation to the caller's clinic.
type PatientService struct {
	Store store.Store
}

func (s *PatientService) Create(ctx context.Context, therapistID string, p domain.Patient) (domain.Patient, error) {
	clinicID, err := callerClinic(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Patient{}, err
	}

	now := time.Now().UTC()
	p.ID = idx.New().String()
	p.ClinicID = clinicID
	p.Status = domain.PatientStatusActive
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Store.Patients().CreatePatient(ctx, p); err != nil {
		return domain.Patient{}, fmt.Errorf("create patient: %w", err)
	}
	return s.Store.Patients().GetPatient(ctx, clinicID, p.ID)
}

// List returns the clinic's patients newest first. An unaffiliated caller
// gets an empty list.
func (s *PatientService) List(ctx context.Context, therapistID string) ([]domain.Patient, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Patient{}, nil
	}
	return s.Store.Patients().ListPatients(ctx, clinicID)
}

func (s *PatientService) Get(ctx context.Context, therapistID, patientID string) (domain.Patient, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Patient{}, err
	}
	if !ok {
		return domain.Patient{}, ErrPatientNotFound
	}

	p, err := s.Store.Patients().GetPatient(ctx, clinicID, patientID)
	if err != nil {
		return domain.Patient{}, notFound(err, ErrPatientNotFound)
	}
	return p, nil
}

func (s *PatientService) Update(ctx context.Context, therapistID, patientID string, upd domain.PatientUpdate) (domain.Patient, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Patient{}, err
	}
	if !ok {
		return domain.Patient{}, ErrPatientNotFound
	}

	p, err := s.Store.Patients().UpdatePatient(ctx, clinicID, patientID, upd, time.Now().UTC())
	if err != nil {
		return domain.Patient{}, notFound(err, ErrPatientNotFound)
	}
	return p, nil
}
