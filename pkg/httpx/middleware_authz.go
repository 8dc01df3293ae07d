package httpx

import (
	"net/http"
)

// RequirePermission moves a request from Authenticated to Authorized. It is
// the single per-route policy check: the caller's token must carry every
// permission listed. It must run after AuthnMiddleware.
func RequirePermission(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				WriteError(w, http.StatusForbidden, MsgForbidden)
				return
			}
			for _, p := range required {
				if !claims.HasPermission(p) {
					WriteError(w, http.StatusForbidden, MsgForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
