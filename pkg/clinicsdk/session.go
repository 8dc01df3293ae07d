package clinicsdk

import (
	"context"
	"net/http"
)

// Session performs authenticated operations. It is immutable and safe for
// concurrent use.
type Session struct {
	client *Client
	token  string
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

func (s *Session) call(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	return s.client.call(ctx, method, APIPrefix+path, s.token, body, target, expectedStatus)
}

// Logout is stateless server side; the token stays valid until it expires.
func (s *Session) Logout(ctx context.Context) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.call(ctx, http.MethodPost, "/auth/logout", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated therapist.
func (s *Session) Me(ctx context.Context) (*Therapist, error) {
	var out MeResponse
	if err := s.call(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Therapist, nil
}

// EnrollTOTP starts TOTP enrolment and returns the shared secret.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.call(ctx, http.MethodPost, "/auth/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP confirms enrolment; from then on login requires a code.
func (s *Session) VerifyTOTP(ctx context.Context, code string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.call(ctx, http.MethodPost, "/auth/mfa/totp/verify", TOTPCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableTOTP removes the second factor after checking a current code.
func (s *Session) DisableTOTP(ctx context.Context, code string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.call(ctx, http.MethodDelete, "/auth/mfa/totp", TOTPCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
