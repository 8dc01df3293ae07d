package slogx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "clinic", Version: "test", Env: "test", Level: "debug", Output: &buf})

	logger.Debug("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "clinic", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLevel("debug").String())
	require.Equal(t, "WARN", parseLevel("warning").String())
	require.Equal(t, "ERROR", parseLevel("ERROR").String())
	require.Equal(t, "INFO", parseLevel("nonsense").String())
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Service: "clinic", Format: "json", Output: &buf})

	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := With(r.Context(), "therapist_id", "t-1")
		FromContext(ctx).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.NotEmpty(t, rec.Header().Get(RequestIDHeader))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var access map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &access))
		require.Equal(t, "http_request", access["msg"])
		require.EqualValues(t, http.StatusTeapot, access["status"])
		require.Equal(t, "t-1", access["therapist_id"])
	})

	t.Run("echoes caller request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set(RequestIDHeader, "abc123")
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc123", rec.Header().Get(RequestIDHeader))
	})
}
