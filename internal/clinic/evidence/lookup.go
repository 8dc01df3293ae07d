package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// StaticLookup answers from a format string. It stands in for a provider
// when no URL is configured.
type StaticLookup struct {
	Format string // receives the intervention type as its only verb
}

func (l StaticLookup) Lookup(_ context.Context, interventionType string) (string, error) {
	return fmt.Sprintf(l.Format, interventionType), nil
}

// Placeholder lookups used when no provider URL is configured.
var (
	StaticSummary  = StaticLookup{Format: "Summary for %s"}
	StaticEvidence = StaticLookup{Format: "Evidence result for %s"}
)

type HTTPLookupConfig struct {
	BaseURL string
	Path    string // defaults to /lookup
	APIKey  string
	Timeout time.Duration
	Retries int
}

// HTTPLookup queries a provider with
//
//	GET {BaseURL}{Path}?intervention_type=...
//
// and expects a JSON body of the form {"text": "..."}.
type HTTPLookup struct {
	client *resty.Client
	path   string
}

type lookupResponse struct {
	Text string `json:"text"`
}

type lookupError struct {
	Error string `json:"error"`
}

func NewHTTPLookup(cfg HTTPLookupConfig) *HTTPLookup {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Path == "" {
		cfg.Path = "/lookup"
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &HTTPLookup{client: client, path: cfg.Path}
}

func (l *HTTPLookup) Lookup(ctx context.Context, interventionType string) (string, error) {
	var out lookupResponse
	var failure lookupError

	resp, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("intervention_type", interventionType).
		SetResult(&out).
		SetError(&failure).
		Get(l.path)
	if err != nil {
		return "", fmt.Errorf("evidence provider: %w", err)
	}
	if resp.IsError() {
		if failure.Error != "" {
			return "", fmt.Errorf("evidence provider: %d: %s", resp.StatusCode(), failure.Error)
		}
		return "", fmt.Errorf("evidence provider: unexpected status %d", resp.StatusCode())
	}
	if out.Text == "" {
		return "", errors.New("evidence provider: empty response")
	}
	return out.Text, nil
}
