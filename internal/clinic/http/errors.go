package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/validation"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

var (
	errEmailTaken         = clinicsdk.NewAPIError(http.StatusConflict, "Therapist with this email already exists")
	errInvalidCredentials = clinicsdk.NewAPIError(http.StatusUnauthorized, "Invalid email or password")
	errMFARequired        = clinicsdk.NewAPIError(http.StatusUnauthorized, "TOTP code required")
	errInvalidTOTPLogin   = clinicsdk.NewAPIError(http.StatusUnauthorized, "Invalid TOTP code")
	errInvalidTOTPCode    = clinicsdk.NewAPIError(http.StatusBadRequest, "Invalid TOTP code")
	errMFANotEnrolled     = clinicsdk.NewAPIError(http.StatusBadRequest, "TOTP enrolment has not been started")
	errMFANotEnabled      = clinicsdk.NewAPIError(http.StatusBadRequest, "MFA is not enabled")
	errMFAAlreadyEnabled  = clinicsdk.NewAPIError(http.StatusConflict, "MFA is already enabled")
	errTherapistNotFound  = clinicsdk.NewAPIError(http.StatusNotFound, "Therapist not found")
	errNoClinic           = clinicsdk.NewAPIError(http.StatusConflict, "Therapist is not associated with a clinic")
	errClinicNotFound     = clinicsdk.NewAPIError(http.StatusNotFound, "Clinic not found")
	errPatientNotFound    = clinicsdk.NewAPIError(http.StatusNotFound, "Patient not found")
	errPatientNotInClinic = clinicsdk.NewAPIError(http.StatusNotFound, "Patient not found or unauthorized")
	errScenarioNotFound   = clinicsdk.NewAPIError(http.StatusNotFound, "Scenario not found")
	errScaleNotFound      = clinicsdk.NewAPIError(http.StatusNotFound, "Assessment scale not found")
	errInterventionType   = clinicsdk.NewAPIError(http.StatusBadRequest, "Intervention type is required")
	errEvidenceUpstream   = clinicsdk.NewAPIError(http.StatusBadGateway, "Evidence provider unavailable")
)

// sentinels maps service errors to their client response. Anything not
// listed is a 500.
var sentinels = []struct {
	err error
	api *clinicsdk.APIError
}{
	{service.ErrEmailTaken, errEmailTaken},
	{service.ErrInvalidCredentials, errInvalidCredentials},
	{service.ErrMFARequired, errMFARequired},
	{service.ErrInvalidTOTPCode, errInvalidTOTPCode},
	{service.ErrMFANotEnrolled, errMFANotEnrolled},
	{service.ErrMFANotEnabled, errMFANotEnabled},
	{service.ErrMFAAlreadyEnabled, errMFAAlreadyEnabled},
	{service.ErrTherapistNotFound, errTherapistNotFound},
	{service.ErrNoClinic, errNoClinic},
	{service.ErrClinicNotFound, errClinicNotFound},
	{service.ErrPatientNotFound, errPatientNotFound},
	{service.ErrScenarioNotFound, errScenarioNotFound},
	{service.ErrScaleNotFound, errScaleNotFound},
	{service.ErrInvalidInterventionType, errInterventionType},
}

// writeError answers with the client facing form of err. Unmapped errors are
// logged in full and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		httpx.WriteError(w, http.StatusBadRequest, vErr.Message)
		return
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			s.api.WriteError(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	clinicsdk.ErrInternal.WriteError(w)
}
