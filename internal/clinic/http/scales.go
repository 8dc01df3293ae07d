package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

// ScaleHandler serves the read-only assessment scale catalogue.
type ScaleHandler struct {
	ScaleService *service.ScaleService
}

// HandleList handles GET /assessment-scales
//
//	@Summary		List assessment scales
//	@Tags			Assessment Scales
//	@Security		BearerAuth
//	@Produce		json
//	@Param			category	query		string	false	"Filter by category"
//	@Success		200			{object}	clinicsdk.ScaleListResponse
//	@Router			/assessment-scales [get].
func (h *ScaleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("category"))
}

// HandleListByCategory handles GET /assessment-scales/category/{category}
//
//	@Summary		List scales in a category
//	@Tags			Assessment Scales
//	@Security		BearerAuth
//	@Produce		json
//	@Param			category	path		string	true	"Category"
//	@Success		200			{object}	clinicsdk.ScaleListResponse
//	@Router			/assessment-scales/category/{category} [get].
func (h *ScaleHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.PathValue("category"))
}

func (h *ScaleHandler) list(w http.ResponseWriter, r *http.Request, category string) {
	category = strings.ToLower(strings.TrimSpace(category))

	scales, err := h.ScaleService.List(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScaleListResponse{
		Category: category,
		Count:    len(scales),
		Scales:   toScales(scales),
	})
}

// HandleGet handles GET /assessment-scales/{id}
//
//	@Summary		Get an assessment scale
//	@Tags			Assessment Scales
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Scale ID"
//	@Success		200	{object}	clinicsdk.ScaleResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Assessment scale not found"
//	@Router			/assessment-scales/{id} [get].
func (h *ScaleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errScaleNotFound.WriteError(w)
		return
	}

	s, err := h.ScaleService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScaleResponse{Scale: toScale(s)})
}

// HandleGetByAbbreviation handles GET /assessment-scales/abbreviation/{abbr}
//
//	@Summary		Get a scale by abbreviation
//	@Description	Matching is case-insensitive, so phq-9 finds PHQ-9.
//	@Tags			Assessment Scales
//	@Security		BearerAuth
//	@Produce		json
//	@Param			abbr	path		string	true	"Abbreviation"
//	@Success		200		{object}	clinicsdk.ScaleResponse
//	@Failure		404		{object}	clinicsdk.APIError	"Assessment scale not found"
//	@Router			/assessment-scales/abbreviation/{abbr} [get].
func (h *ScaleHandler) HandleGetByAbbreviation(w http.ResponseWriter, r *http.Request) {
	s, err := h.ScaleService.GetByAbbreviation(r.Context(), r.PathValue("abbr"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScaleResponse{Scale: toScale(s)})
}

// HandleCategories handles GET /assessment-scales/categories
//
//	@Summary		List scale categories
//	@Tags			Assessment Scales
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.ScaleCategoriesResponse
//	@Router			/assessment-scales/categories [get].
func (h *ScaleHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.ScaleService.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScaleCategoriesResponse{Count: len(cats), Categories: cats})
}
