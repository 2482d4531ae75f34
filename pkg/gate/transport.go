package gate

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/authgate/pkg/cookie"
)

// transport carries the session key between client and gate. The mode is
// fixed at construction from the configuration, never negotiated per
// request.
type transport interface {
	// extract returns the raw session key from the request, or "" when the
	// request carries none. Pure function of the request.
	extract(r *http.Request) string

	// set attaches the session key to the response.
	set(w http.ResponseWriter, key string)

	// clear removes the session credential from the client.
	clear(w http.ResponseWriter)
}

// cookieTransport carries the key in a named cookie.
type cookieTransport struct {
	cookies *cookie.Manager
	name    string
}

func (t cookieTransport) extract(r *http.Request) string {
	v, err := t.cookies.Get(r, t.name)
	if err != nil {
		return ""
	}
	return v
}

func (t cookieTransport) set(w http.ResponseWriter, key string) {
	t.cookies.Set(w, t.name, key)
}

func (t cookieTransport) clear(w http.ResponseWriter) {
	t.cookies.Delete(w, t.name)
}

const bearerPrefix = "Bearer "

// bearerTransport reads the key from the Authorization header. The issued
// key travels back to the client in the login JSON body, so set and clear
// touch nothing on the response.
type bearerTransport struct{}

func (bearerTransport) extract(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(auth, bearerPrefix)
}

func (bearerTransport) set(w http.ResponseWriter, key string) {}

func (bearerTransport) clear(w http.ResponseWriter) {}
