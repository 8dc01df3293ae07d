package httpx

import (
	"context"

	"github.com/aussiebroadwan/clinic/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyTherapistID ctxKey = "therapist_id"
	CtxKeyEmail       ctxKey = "email"
	CtxKeyPermissions ctxKey = "permissions"
	CtxKeyClaims      ctxKey = "claims"
)

// Identity is the authenticated caller as seen by handlers.
type Identity struct {
	TherapistID string
	Email       string
	Permissions []string
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyTherapistID, c.TherapistID)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyPermissions, c.Permissions)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// IdentityFrom returns the caller attached by AuthnMiddleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyTherapistID).(string)
	if !ok || id == "" {
		return Identity{}, false
	}
	email, _ := ctx.Value(CtxKeyEmail).(string)
	return Identity{
		TherapistID: id,
		Email:       email,
		Permissions: permissionsFromCtx(ctx),
	}, true
}

// ClaimsFrom returns the full verified claims.
func ClaimsFrom(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func permissionsFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyPermissions).([]string); ok {
		return v
	}
	return nil
}
