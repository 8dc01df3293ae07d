package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// MFAHandler handles TOTP enrolment for the authenticated therapist.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /auth/mfa/totp/enroll
//
//	@Summary		Start TOTP enrolment
//	@Description	Generates a pending TOTP secret. MFA is enforced only after it is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.TOTPEnrollResponse
//	@Failure		401	{object}	clinicsdk.APIError	"Missing token"
//	@Failure		409	{object}	clinicsdk.APIError	"MFA already enabled"
//	@Router			/auth/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	enrol, err := h.MFAService.EnrollTOTP(r.Context(), therapistID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.TOTPEnrollResponse{
		Secret:     enrol.Secret,
		OTPAuthURL: enrol.URL,
	})
}

// HandleVerify handles POST /auth/mfa/totp/verify
//
//	@Summary		Confirm TOTP enrolment
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.TOTPCodeRequest	true	"Current code"
//	@Success		200		{object}	clinicsdk.MessageResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Invalid code or not enrolled"
//	@Failure		409		{object}	clinicsdk.APIError	"MFA already enabled"
//	@Router			/auth/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.TOTPCodeRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.MFAService.VerifyTOTP(r.Context(), therapistID(r), req.Code); err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("mfa enabled")
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.MessageResponse{Message: "MFA enabled"})
}

// HandleDisable handles DELETE /auth/mfa/totp
//
//	@Summary		Remove TOTP
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.TOTPCodeRequest	true	"Current code"
//	@Success		200		{object}	clinicsdk.MessageResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Invalid code or MFA not enabled"
//	@Router			/auth/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.TOTPCodeRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.MFAService.DisableTOTP(r.Context(), therapistID(r), req.Code); err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("mfa disabled")
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.MessageResponse{Message: "MFA disabled"})
}
