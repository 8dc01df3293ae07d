package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

type ClinicHandler struct {
	ClinicService *service.ClinicService
}

// HandleCreate handles POST /clinics
//
//	@Summary		Create a clinic
//	@Description	Creates a clinic owned by the caller. A caller without a clinic joins the new one.
//	@Tags			Clinics
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.CreateClinicRequest	true	"Clinic"
//	@Success		201		{object}	clinicsdk.ClinicResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		401		{object}	clinicsdk.APIError	"Missing token"
//	@Failure		403		{object}	clinicsdk.APIError	"Invalid token or permission"
//	@Router			/clinics [post].
func (h *ClinicHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.CreateClinicRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c := domain.Clinic{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
	}
	if a := fromAddress(req.Address); a != nil {
		c.Address = *a
	}

	created, err := h.ClinicService.Create(r.Context(), therapistID(r), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.ClinicResponse{
		Message: "Clinic created successfully",
		Clinic:  toClinic(created),
	})
}

// HandleList handles GET /clinics
//
//	@Summary		List visible clinics
//	@Tags			Clinics
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.ClinicListResponse
//	@Router			/clinics [get].
func (h *ClinicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.ClinicService.List(r.Context(), therapistID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ClinicListResponse{Clinics: toClinics(clinics)})
}

// HandleGet handles GET /clinics/{id}
//
//	@Summary		Get a clinic
//	@Tags			Clinics
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Clinic ID"
//	@Success		200	{object}	clinicsdk.ClinicResponse
//	@Failure		404	{object}	clinicsdk.APIError	"Clinic not found"
//	@Router			/clinics/{id} [get].
func (h *ClinicHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errClinicNotFound.WriteError(w)
		return
	}

	c, err := h.ClinicService.Get(r.Context(), therapistID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ClinicResponse{Clinic: toClinic(c)})
}

// HandleUpdate handles PUT /clinics/{id}
//
//	@Summary		Update a clinic
//	@Description	Only fields present in the body are changed.
//	@Tags			Clinics
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Clinic ID"
//	@Param			request	body		clinicsdk.UpdateClinicRequest	true	"Fields to change"
//	@Success		200		{object}	clinicsdk.ClinicResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		404		{object}	clinicsdk.APIError	"Clinic not found"
//	@Router			/clinics/{id} [put].
func (h *ClinicHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		errClinicNotFound.WriteError(w)
		return
	}

	var req clinicsdk.UpdateClinicRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email != nil {
		e := clinicsdk.NormalizeEmail(*req.Email)
		req.Email = &e
	}

	c, err := h.ClinicService.Update(r.Context(), therapistID(r), id, domain.ClinicUpdate{
		Name:          req.Name,
		Address:       fromAddress(req.Address),
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Status:        req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.ClinicResponse{
		Message: "Clinic updated successfully",
		Clinic:  toClinic(c),
	})
}
