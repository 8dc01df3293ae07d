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

type ScenarioHandler struct {
	ScenarioService *service.ScenarioService
}

// HandleCreate handles POST /scenarios
//
//	@Summary		Record a clinical scenario
//	@Description	raw_input is required when scenario_type is free_text.
//	@Tags			Scenarios
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.CreateScenarioRequest	true	"Scenario"
//	@Success		201		{object}	clinicsdk.ScenarioResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		404		{object}	clinicsdk.APIError	"Patient not found or unauthorized"
//	@Router			/scenarios [post].
func (h *ScenarioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.CreateScenarioRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.ScenarioService.Create(r.Context(), therapistID(r), fromCreateScenario(req))
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			errPatientNotInClinic.WriteError(w)
			return
		}
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.ScenarioResponse{
		Message:  "Clinical scenario created successfully",
		Scenario: toScenario(s),
	})
}

// HandleGet handles GET /scenarios/{id}
//
//	@Summary		Get a scenario
//	@Tags			Scenarios
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Scenario ID"
//	@Success		200	{object}	clinicsdk.ScenarioResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Scenario not found"
//	@Router			/scenarios/{id} [get].
func (h *ScenarioHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errScenarioNotFound.WriteError(w)
		return
	}

	s, err := h.ScenarioService.Get(r.Context(), therapistID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScenarioResponse{Scenario: toScenario(s)})
}

// HandleListByPatient handles GET /scenarios/patient/{id}
//
//	@Summary		List a patient's scenarios
//	@Tags			Scenarios
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Patient ID"
//	@Success		200	{object}	clinicsdk.ScenarioListResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Patient not found"
//	@Router			/scenarios/patient/{id} [get].
func (h *ScenarioHandler) HandleListByPatient(w http.ResponseWriter, r *http.Request) {
	listScenarios(w, r, h.ScenarioService)
}

// HandleUpdate handles PUT /scenarios/{id}
//
//	@Summary		Update a scenario
//	@Tags			Scenarios
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Scenario ID"
//	@Param			request	body		clinicsdk.UpdateScenarioRequest	true	"Fields to change"
//	@Success		200		{object}	clinicsdk.ScenarioResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		404		{object}	clinicsdk.APIError	"Scenario not found"
//	@Router			/scenarios/{id} [put].
func (h *ScenarioHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errScenarioNotFound.WriteError(w)
		return
	}

	var req clinicsdk.UpdateScenarioRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.ScenarioService.Update(r.Context(), therapistID(r), id, domain.ScenarioUpdate{
		PresentingProblems: req.PresentingProblems,
		DSM5Codes:          req.DSM5Codes,
		SymptomSeverity:    req.SymptomSeverity,
		AssessmentScales:   req.AssessmentScales,
		ProviderNotes:      req.ProviderNotes,
		UrgentFlags:        req.UrgentFlags,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScenarioResponse{
		Message:  "Scenario updated successfully",
		Scenario: toScenario(s),
	})
}
