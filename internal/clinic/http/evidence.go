package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

type EvidenceHandler struct {
	EvidenceService *service.EvidenceService
}

// HandleGet handles GET /evidence/{type}
//
//	@Summary		Evidence for an intervention type
//	@Description	Served from the cache when fresh, otherwise fetched from the providers and cached.
//	@Tags			Evidence
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Intervention type"
//	@Success		200		{object}	clinicsdk.EvidenceResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Blank intervention type"
//	@Failure		502		{object}	clinicsdk.APIError	"Provider unavailable"
//	@Router			/evidence/{type} [get].
func (h *EvidenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, cached, err := h.EvidenceService.Get(r.Context(), r.PathValue("type"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInterventionType) {
			writeError(w, r, err)
			return
		}
		slogx.FromContext(r.Context()).Error("evidence lookup failed", slog.Any("error", err))
		errEvidenceUpstream.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.EvidenceResponse{
		InterventionType: e.InterventionType,
		Summary:          e.Summary,
		Evidence:         e.Evidence,
		FetchedAt:        e.FetchedAt,
		ExpiresAt:        e.ExpiresAt,
		Cached:           cached,
	})
}

// HandleInvalidate handles DELETE /evidence/{type}
//
//	@Summary		Drop a cached evidence entry
//	@Tags			Evidence
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	path		string	true	"Intervention type"
//	@Success		200		{object}	clinicsdk.MessageResponse
//	@Router			/evidence/{type} [delete].
func (h *EvidenceHandler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.EvidenceService.Invalidate(r.Context(), r.PathValue("type")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.MessageResponse{Message: "Evidence cache entry removed"})
}
