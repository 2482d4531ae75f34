package gate

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/identity"
)

// SessionKey extracts the raw session key from the request using the
// configured transport. Returns "" when the request carries no credential.
func (g *Gate) SessionKey(r *http.Request) string {
	return g.transport.extract(r)
}

// ResolveSession resolves the request credential to an identity. An absent
// credential short-circuits to StatusNotFound without contacting the store;
// otherwise the store's CheckKey result is returned verbatim.
func (g *Gate) ResolveSession(ctx context.Context, r *http.Request) (identity.Resolution, error) {
	key := g.SessionKey(r)
	if key == "" {
		return identity.Resolution{Status: identity.StatusNotFound}, nil
	}
	return g.store.CheckKey(ctx, key)
}

// UserData resolves the session and, when valid, returns the full user
// attribute record with the session data merged in under "session_data".
// An invalid session yields nil with a nil error.
func (g *Gate) UserData(ctx context.Context, r *http.Request) (map[string]any, error) {
	res, err := g.ResolveSession(ctx, r)
	if err != nil {
		return nil, err
	}
	if res.Status != identity.StatusOK {
		return nil, nil
	}

	user, err := g.store.FindUser(ctx, res.UserID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"admin":    user.Admin,
	}
	for k, v := range user.Extra {
		data[k] = v
	}
	data["session_data"] = res.Data

	return data, nil
}
