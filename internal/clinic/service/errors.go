package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTherapistNotFound  = errors.New("therapist_not_found")
	ErrNoClinic           = errors.New("no_clinic")
	ErrClinicNotFound     = errors.New("clinic_not_found")
	ErrPatientNotFound    = errors.New("patient_not_found")
	ErrScenarioNotFound   = errors.New("scenario_not_found")
	ErrScaleNotFound      = errors.New("scale_not_found")
)

// caller loads the acting therapist. A token for a therapist that no longer
// exists is reported as ErrTherapistNotFound.
func caller(ctx context.Context, s store.Store, therapistID string) (domain.Therapist, error) {
	t, err := s.Therapists().GetTherapistByID(ctx, therapistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Therapist{}, ErrTherapistNotFound
		}
		return domain.Therapist{}, fmt.Errorf("load therapist: %w", err)
	}
	return t, nil
}

// callerClinic resolves the clinic a write is scoped to. Unaffiliated
// therapists get ErrNoClinic.
func callerClinic(ctx context.Context, s store.Store, therapistID string) (string, error) {
	clinicID, ok, err := readScope(ctx, s, therapistID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoClinic
	}
	return clinicID, nil
}

// readScope resolves the clinic a read is scoped to. ok is false for an
// unaffiliated therapist, who can see no patient-level rows at all.
func readScope(ctx context.Context, s store.Store, therapistID string) (clinicID string, ok bool, err error) {
	t, err := caller(ctx, s, therapistID)
	if err != nil {
		return "", false, err
	}
	if !t.HasClinic() {
		return "", false, nil
	}
	return *t.ClinicID, true, nil
}

// notFound swaps store.ErrNotFound for a resource specific sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, store.ErrNotFound) {
		return sentinel
	}
	return err
}
