package httpx

import (
	"encoding/json"
	"net/http"
)

// Fixed client-facing messages. Anything that reaches the client as a 500
// uses MsgInternal so storage details stay server side.
const (
	MsgInternal       = "Internal server error"
	MsgTokenRequired  = "Access token required"
	MsgTokenInvalid   = "Invalid or expired token"
	MsgForbidden      = "Insufficient permissions"
	MsgRateLimited    = "Too many requests, please try again later"
	MsgNotFound       = "Route not found"
	MsgInvalidRequest = "Invalid request body"
)

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorBody{Error: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Every response here carries either a token or clinical data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// NotFoundHandler answers unmatched routes with the error envelope.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, MsgNotFound)
	}
}
