package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Assessment scales
// ============================================================================

// ListScales lists every scale, or only one category when category is set.
func (s *Session) ListScales(ctx context.Context, category string) (*ScaleListResponse, error) {
	path := "/assessment-scales"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}

	var out ScaleListResponse
	if err := s.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetScale(ctx context.Context, id string) (*ScaleResponse, error) {
	var out ScaleResponse
	if err := s.call(ctx, http.MethodGet, "/assessment-scales/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetScaleByAbbreviation(ctx context.Context, abbr string) (*ScaleResponse, error) {
	var out ScaleResponse
	if err := s.call(ctx, http.MethodGet, "/assessment-scales/abbreviation/"+url.PathEscape(abbr), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListScalesByCategory(ctx context.Context, category string) (*ScaleListResponse, error) {
	var out ScaleListResponse
	if err := s.call(ctx, http.MethodGet, "/assessment-scales/category/"+url.PathEscape(category), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListScaleCategories(ctx context.Context) (*ScaleCategoriesResponse, error) {
	var out ScaleCategoriesResponse
	if err := s.call(ctx, http.MethodGet, "/assessment-scales/categories", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Interventions
// ============================================================================

func (s *Session) QuickLogIntervention(ctx context.Context, req QuickLogRequest) (*InterventionResponse, error) {
	var out InterventionResponse
	if err := s.call(ctx, http.MethodPost, "/interventions/quick-log", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RecentInterventions(ctx context.Context) (*InterventionListResponse, error) {
	var out InterventionListResponse
	if err := s.call(ctx, http.MethodGet, "/interventions/recent", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Evidence
// ============================================================================

func (s *Session) GetEvidence(ctx context.Context, interventionType string) (*EvidenceResponse, error) {
	var out EvidenceResponse
	if err := s.call(ctx, http.MethodGet, "/evidence/"+url.PathEscape(interventionType), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) InvalidateEvidence(ctx context.Context, interventionType string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.call(ctx, http.MethodDelete, "/evidence/"+url.PathEscape(interventionType), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
