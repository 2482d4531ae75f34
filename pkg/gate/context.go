package gate

import "context"

// identityContextKey namespaces injected identities per keyword so that
// several gates can coexist on one host without clobbering each other.
type identityContextKey struct{ keyword string }

func withIdentity(ctx context.Context, keyword string, data map[string]any) context.Context {
	return context.WithValue(ctx, identityContextKey{keyword: keyword}, data)
}

// IdentityFrom retrieves the identity injected under keyword, if any.
func IdentityFrom(ctx context.Context, keyword string) (map[string]any, bool) {
	data, ok := ctx.Value(identityContextKey{keyword: keyword}).(map[string]any)
	return data, ok
}

// Identity retrieves the identity injected by this gate.
func (g *Gate) Identity(ctx context.Context) (map[string]any, bool) {
	return IdentityFrom(ctx, g.keyword)
}
