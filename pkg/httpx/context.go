package httpx

import "context"

// Identity is the request-scoped identity resolved from a verified session
// token. It lives only for the duration of one request.
type Identity struct {
	Subject int64
	Email   string
}

type ctxKey struct{}

// ContextWithIdentity attaches the resolved identity to the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity attached by the session
// middleware. The second return is false on unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
