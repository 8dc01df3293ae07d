package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

type ClinicService struct {
	Store store.Store
}

// visible reports whether t may see c: it is t's clinic or t created it.
func visible(t domain.Therapist, c domain.Clinic) bool {
	return c.CreatedBy == t.ID || (t.HasClinic() && *t.ClinicID == c.ID)
}

// Create inserts a clinic owned by the caller. A caller without a clinic is
// enrolled in the new one within the same transaction.
func (s *ClinicService) Create(ctx context.Context, therapistID string, c domain.Clinic) (domain.Clinic, error) {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Clinic{}, err
	}

	now := time.Now().UTC()
	c.ID = idx.New().String()
	c.Status = domain.ClinicStatusActive
	c.CreatedBy = t.ID
	c.CreatedAt = now
	c.UpdatedAt = now

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clinics().CreateClinic(ctx, c); err != nil {
			return fmt.Errorf("create clinic: %w", err)
		}
		if !t.HasClinic() {
			if err := tx.Therapists().SetClinic(ctx, t.ID, c.ID, now); err != nil {
				return fmt.Errorf("enrol creator: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Clinic{}, err
	}
	return c, nil
}

// List returns every clinic visible to the caller, newest first.
func (s *ClinicService) List(ctx context.Context, therapistID string) ([]domain.Clinic, error) {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return nil, err
	}
	return s.Store.Clinics().ListVisibleClinics(ctx, t.ID, t.ClinicID)
}

// Get returns ErrClinicNotFound for clinics the caller cannot see.
func (s *ClinicService) Get(ctx context.Context, therapistID, clinicID string) (domain.Clinic, error) {
	t, err := caller(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Clinic{}, err
	}

	c, err := s.Store.Clinics().GetClinicByID(ctx, clinicID)
	if err != nil {
		return domain.Clinic{}, notFound(err, ErrClinicNotFound)
	}
	if !visible(t, c) {
		return domain.Clinic{}, ErrClinicNotFound
	}
	return c, nil
}

// Update applies a partial update to a visible clinic.
func (s *ClinicService) Update(ctx context.Context, therapistID, clinicID string, upd domain.ClinicUpdate) (domain.Clinic, error) {
	if _, err := s.Get(ctx, therapistID, clinicID); err != nil {
		return domain.Clinic{}, err
	}

	c, err := s.Store.Clinics().UpdateClinic(ctx, clinicID, upd, time.Now().UTC())
	if err != nil {
		return domain.Clinic{}, notFound(err, ErrClinicNotFound)
	}
	return c, nil
}
