package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

// RecentInterventionLimit is how many interventions Recent returns.
const RecentInterventionLimit = 10

type InterventionService struct {
	Store store.Store
}

// QuickLog records an intervention delivered by the caller to a patient of
// their clinic.
func (s *InterventionService) QuickLog(ctx context.Context, therapistID string, i domain.Intervention) (domain.Intervention, error) {
	clinicID, err := callerClinic(ctx, s.Store, therapistID)
	if err != nil {
		return domain.Intervention{}, err
	}

	if _, err := s.Store.Patients().GetPatient(ctx, clinicID, i.PatientID); err != nil {
		return domain.Intervention{}, notFound(err, ErrPatientNotFound)
	}

	i.ID = idx.New().String()
	i.TherapistID = therapistID
	i.CreatedAt = time.Now().UTC()

	if err := s.Store.Interventions().CreateIntervention(ctx, i); err != nil {
		return domain.Intervention{}, fmt.Errorf("create intervention: %w", err)
	}
	return i, nil
}

// Recent returns the newest interventions logged in the caller's clinic.
func (s *InterventionService) Recent(ctx context.Context, therapistID string) ([]domain.Intervention, error) {
	clinicID, ok, err := readScope(ctx, s.Store, therapistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Intervention{}, nil
	}
	return s.Store.Interventions().ListRecentInterventions(ctx, clinicID, RecentInterventionLimit)
}
