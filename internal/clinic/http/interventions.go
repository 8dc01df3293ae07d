package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

type InterventionHandler struct {
	InterventionService *service.InterventionService
}

// HandleQuickLog handles POST /interventions/quick-log
//
//	@Summary		Log an intervention
//	@Tags			Interventions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.QuickLogRequest	true	"Intervention"
//	@Success		201		{object}	clinicsdk.InterventionResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		404		{object}	clinicsdk.APIError	"Patient not found or unauthorized"
//	@Router			/interventions/quick-log [post].
func (h *InterventionHandler) HandleQuickLog(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.QuickLogRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	i, err := h.InterventionService.QuickLog(r.Context(), therapistID(r), domain.Intervention{
		PatientID:            req.PatientID,
		InterventionType:     req.InterventionType,
		InterventionCategory: req.InterventionCategory,
		DurationMinutes:      req.DurationMinutes,
		Setting:              req.Setting,
		ResponseRating:       req.ResponseRating,
		Notes:                req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			errPatientNotInClinic.WriteError(w)
			return
		}
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.InterventionResponse{
		Message:      "Intervention logged successfully",
		Intervention: toIntervention(i),
	})
}

// HandleRecent handles GET /interventions/recent
//
//	@Summary		Recent interventions
//	@Description	The newest interventions logged in the caller's clinic.
//	@Tags			Interventions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.InterventionListResponse
//	@Router			/interventions/recent [get].
func (h *InterventionHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	items, err := h.InterventionService.Recent(r.Context(), therapistID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.InterventionListResponse{
		Count:         len(items),
		Interventions: toInterventions(items),
	})
}
