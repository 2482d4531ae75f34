package gate

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/authgate"
)

// tokenResponse is the login success body in bearer-transport mode. Field
// names are part of the wire contract.
type tokenResponse struct {
	RC          int    `json:"rc"`
	Text        string `json:"text"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

// withSessionCookie sets the session cookie before rendering the wrapped
// response, so a successful cookie-mode login carries both the credential
// and the redirect in one terminal value.
type withSessionCookie struct {
	transport transport
	key       string
	next      authgate.Response
}

func (c withSessionCookie) Render(w http.ResponseWriter, r *http.Request) error {
	c.transport.set(w, c.key)
	return c.next.Render(w, r)
}

// LoginHandler returns the POST login endpoint handler.
func (g *Gate) LoginHandler() http.HandlerFunc {
	return authgate.Handler(g.login)
}

// login drives the login state machine: negotiate content type, validate
// credentials against the store, then branch on transport mode and request
// channel.
func (g *Gate) login(r *http.Request) authgate.Response {
	req, err := decodeLogin(r)
	if err != nil {
		return authgate.Errorf(http.StatusBadRequest, "Malformed login request")
	}
	if req.Proceed == "" {
		req.Proceed = r.URL.RequestURI()
	}

	key, _, _, err := g.store.ValidateUser(r.Context(), req.Username, req.Password, nil)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "credential validation failed", "username", req.Username, "error", err)
		return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	if key == "" {
		g.logger.InfoContext(r.Context(), "login rejected", "username", req.Username)
		if isJSONRequest(r) {
			return authgate.Errorf(http.StatusUnauthorized, fmt.Sprintf("Bad credentials for user '%s'", req.Username))
		}
		page, err := g.renderBadCredentials(req.Username, req.Proceed)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "bad-credentials page rendering failed", "error", err)
			return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		// Deliberate asymmetry: browsers get the failure in the page body
		// with a 200, API clients get the 401 above.
		return authgate.HTML(http.StatusOK, page)
	}

	g.logger.InfoContext(r.Context(), "login succeeded", "username", req.Username)

	if g.cfg.App.CookieName != "" {
		return withSessionCookie{
			transport: g.transport,
			key:       key,
			next:      authgate.Redirect(req.Proceed),
		}
	}

	return authgate.JSON(http.StatusOK, tokenResponse{
		RC:          http.StatusOK,
		Text:        "OK",
		TokenType:   "Bearer",
		AccessToken: key,
	})
}
