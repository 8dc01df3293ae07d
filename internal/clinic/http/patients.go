package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

// PatientHandler serves patients of the caller's clinic.
type PatientHandler struct {
	PatientService  *service.PatientService
	ScenarioService *service.ScenarioService
}

// HandleCreate handles POST /patients
//
//	@Summary		Create a patient
//	@Tags			Patients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.CreatePatientRequest	true	"Patient intake"
//	@Success		201		{object}	clinicsdk.PatientResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		409		{object}	clinicsdk.APIError	"Caller has no clinic"
//	@Router			/patients [post].
func (h *PatientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.CreatePatientRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.PatientService.Create(r.Context(), therapistID(r), domain.Patient{
		Demographics:         *fromDemographics(req.Demographics),
		ClinicalProfile:      *fromClinicalProfile(req.ClinicalProfile),
		CurrentPresentations: req.CurrentPresentations,
		TreatmentHistory:     req.TreatmentHistory,
		Preferences:          req.Preferences,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.PatientResponse{
		Message: "Patient created successfully",
		Patient: toPatient(p),
	})
}

// HandleList handles GET /patients
//
//	@Summary		List patients
//	@Description	Patients of the caller's clinic, newest first. Empty when the caller has no clinic.
//	@Tags			Patients
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.PatientListResponse
//	@Router			/patients [get].
func (h *PatientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	patients, err := h.PatientService.List(r.Context(), therapistID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.PatientListResponse{
		Count:    len(patients),
		Patients: toPatients(patients),
	})
}

// HandleGet handles GET /patients/{id}
//
//	@Summary		Get a patient
//	@Tags			Patients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Patient ID"
//	@Success		200	{object}	clinicsdk.PatientResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Patient not found"
//	@Router			/patients/{id} [get].
func (h *PatientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errPatientNotFound.WriteError(w)
		return
	}

	p, err := h.PatientService.Get(r.Context(), therapistID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.PatientResponse{Patient: toPatient(p)})
}

// HandleUpdate handles PUT /patients/{id}
//
//	@Summary		Update a patient
//	@Description	Only fields present in the body are replaced.
//	@Tags			Patients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Patient ID"
//	@Param			request	body		clinicsdk.UpdatePatientRequest	true	"Fields to change"
//	@Success		200		{object}	clinicsdk.PatientResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		404		{object}	clinicsdk.APIError	"Patient not found"
//	@Router			/patients/{id} [put].
func (h *PatientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errPatientNotFound.WriteError(w)
		return
	}

	var req clinicsdk.UpdatePatientRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.PatientService.Update(r.Context(), therapistID(r), id, domain.PatientUpdate{
		Demographics:         fromDemographics(req.Demographics),
		ClinicalProfile:      fromClinicalProfile(req.ClinicalProfile),
		CurrentPresentations: req.CurrentPresentations,
		TreatmentHistory:     req.TreatmentHistory,
		Preferences:          req.Preferences,
		Status:               req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.PatientResponse{
		Message: "Patient updated successfully",
		Patient: toPatient(p),
	})
}

// HandleListScenarios handles GET /patients/{id}/scenarios
//
//	@Summary		List a patient's scenarios
//	@Tags			Patients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Patient ID"
//	@Success		200	{object}	clinicsdk.ScenarioListResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Patient not found"
//	@Router			/patients/{id}/scenarios [get].
func (h *PatientHandler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	listScenarios(w, r, h.ScenarioService)
}

// listScenarios backs both scenario listing routes.
func listScenarios(w http.ResponseWriter, r *http.Request, svc *service.ScenarioService) {
	id, ok := pathID(r, "id")
	if !ok {
		errPatientNotFound.WriteError(w)
		return
	}

	scenarios, err := svc.ListByPatient(r.Context(), therapistID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ScenarioListResponse{
		Count:     len(scenarios),
		Scenarios: toScenarios(scenarios),
	})
}
