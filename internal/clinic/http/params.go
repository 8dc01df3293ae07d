package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

// pathID returns the canonical upper-case ULID in the named path value. A
// malformed id cannot match any row, so callers answer it as not found.
func pathID(r *http.Request, name string) (string, bool) {
	id, err := idx.Parse(strings.ToUpper(r.PathValue(name)))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// therapistID returns the caller attached by AuthnMiddleware. Routes behind
// secured always have one.
func therapistID(r *http.Request) string {
	id, _ := httpx.IdentityFrom(r.Context())
	return id.TherapistID
}
