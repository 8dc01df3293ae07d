package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
)

// ScaleService serves the read-only assessment scale catalogue.
type ScaleService struct {
	Store store.Store
}

// List returns all scales, or one category when category is non-empty.
func (s *ScaleService) List(ctx context.Context, category string) ([]domain.AssessmentScale, error) {
	return s.Store.Scales().ListScales(ctx, strings.ToLower(strings.TrimSpace(category)))
}

func (s *ScaleService) Get(ctx context.Context, id string) (domain.AssessmentScale, error) {
	sc, err := s.Store.Scales().GetScaleByID(ctx, id)
	if err != nil {
		return domain.AssessmentScale{}, notFound(err, ErrScaleNotFound)
	}
	return sc, nil
}

// GetByAbbreviation matches case-insensitively, so "phq-9" finds PHQ-9.
func (s *ScaleService) GetByAbbreviation(ctx context.Context, abbr string) (domain.AssessmentScale, error) {
	sc, err := s.Store.Scales().GetScaleByAbbreviation(ctx, strings.TrimSpace(abbr))
	if err != nil {
		return domain.AssessmentScale{}, notFound(err, ErrScaleNotFound)
	}
	return sc, nil
}

func (s *ScaleService) Categories(ctx context.Context) ([]string, error) {
	return s.Store.Scales().ListCategories(ctx)
}
