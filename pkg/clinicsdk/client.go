package clinicsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// APIPrefix is the versioned prefix of every resource route.
const APIPrefix = "/api/v1"

// Client talks to the clinic service. It performs unauthenticated operations
// and creates Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetLiveness calls /livez.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness calls /readyz which also checks the database.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a therapist account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, http.MethodPost, APIPrefix+"/auth/register", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials (and a TOTP code when enrolled) for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, http.MethodPost, APIPrefix+"/auth/login", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticate logs in and wraps the token in a Session.
func (c *Client) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.NewSession(resp.Token), nil
}

// NewSession wraps an existing token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
