package gate

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/pkg/identity"
)

// clearSessionCookie clears the client credential before rendering the
// wrapped response.
type clearSessionCookie struct {
	transport transport
	next      authgate.Response
}

func (c clearSessionCookie) Render(w http.ResponseWriter, r *http.Request) error {
	c.transport.clear(w)
	return c.next.Render(w, r)
}

// LogoutHandler returns the POST logout endpoint handler.
func (g *Gate) LogoutHandler() http.HandlerFunc {
	return authgate.Handler(g.logout)
}

// logout revokes every session of the resolved user and sends the client
// back to the root. Logging out an already-invalid session is not an error:
// the store is simply not contacted and the cookie is cleared anyway.
func (g *Gate) logout(r *http.Request) authgate.Response {
	res, err := g.ResolveSession(r.Context(), r)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "session resolution failed", "error", err)
		return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	if res.Status == identity.StatusOK {
		if err := g.store.KillSessions(r.Context(), res.UserID); err != nil {
			g.logger.ErrorContext(r.Context(), "session revocation failed", "user_id", res.UserID, "error", err)
			return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		g.logger.InfoContext(r.Context(), "sessions revoked", "username", res.Username, "user_id", res.UserID)
	}

	return clearSessionCookie{
		transport: g.transport,
		next:      authgate.Redirect("/"),
	}
}
