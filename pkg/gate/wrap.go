package gate

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
)

// Attach registers this gate on the host: its login, logout, and
// changepassword endpoints plus its route-wrapping filter. Attaching a
// second gate with the same keyword fails with ErrDuplicateKeyword before
// any route is registered.
func (g *Gate) Attach(h *Host) error {
	return h.attach(g)
}

// Wrap applies the authorization gate to a handler according to the route's
// capability declaration. A route that does not declare this gate's keyword
// is public: the handler is returned unchanged. Otherwise the returned
// handler resolves the session on every request and either injects the
// identity under the keyword or answers with the login challenge, using the
// current request URL as the proceed target.
func (g *Gate) Wrap(next http.HandlerFunc, meta RouteMeta) http.HandlerFunc {
	if !meta.requires(g.keyword) {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data, err := g.UserData(r.Context(), r)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "session resolution failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if data == nil {
			g.challenge(r.URL.RequestURI()).ServeHTTP(w, r)
			return
		}

		next(w, r.WithContext(withIdentity(r.Context(), g.keyword, data)))
	}
}

// challenge answers an unauthenticated request to a protected route with
// the login form. The error is carried in the page body, not the status
// code, so browsers render it.
func (g *Gate) challenge(proceed string) http.HandlerFunc {
	return authgate.Handler(func(r *http.Request) authgate.Response {
		page, err := g.renderLogin(proceed)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "login page rendering failed", "error", err)
			return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return authgate.HTML(http.StatusOK, page)
	})
}
