package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register a therapist
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.RegisterRequest	true	"Therapist details"
//	@Success		201		{object}	clinicsdk.AuthResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		409		{object}	clinicsdk.APIError	"Email already registered"
//	@Failure		429		{object}	clinicsdk.APIError	"Rate limited"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.RegisterRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.AuthResponse{
		Message:   "Therapist registered successfully",
		Token:     res.Token,
		Therapist: toTherapist(res.Therapist),
	})
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a session token. Therapists with TOTP enabled must also send totp_code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	clinicsdk.AuthResponse
//	@Failure		400		{object}	clinicsdk.APIError	"Validation failed"
//	@Failure		401		{object}	clinicsdk.APIError	"Invalid credentials or TOTP code"
//	@Failure		429		{object}	clinicsdk.APIError	"Rate limited"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.LoginRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTOTPCode) {
			errInvalidTOTPLogin.WriteError(w)
			return
		}
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.AuthResponse{
		Message:   "Login successful",
		Token:     res.Token,
		Therapist: toTherapist(res.Therapist),
	})
}

// HandleLogout handles POST /auth/logout
//
//	@Summary		Log out
//	@Description	Sessions are stateless; the client discards its token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.MessageResponse
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.MessageResponse{Message: "Logout successful"})
}

// HandleMe handles GET /auth/me
//
//	@Summary		Current therapist
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clinicsdk.MeResponse
//	@Failure		401	{object}	clinicsdk.APIError	"Missing token"
//	@Failure		403	{object}	clinicsdk.APIError	"Invalid token"
//	@Failure		404	{object}	clinicsdk.APIError	"Therapist not found"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	t, err := h.AuthService.Me(r.Context(), therapistID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.MeResponse{Therapist: toTherapist(t)})
}
