package gate

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Host owns the routing surface gates attach to. Attach a gate first, then
// register routes; routes declaring WithIdentity are wrapped by the gate
// holding that keyword, all others pass through unwrapped.
type Host struct {
	router chi.Router

	mu    sync.Mutex
	gates map[string]*Gate
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithRouter mounts the host on an existing chi router instead of a fresh
// one, e.g. to share middleware with the rest of the application.
func WithRouter(r chi.Router) HostOption {
	return func(h *Host) {
		h.router = r
	}
}

// NewHost creates a Host backed by a chi router.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		gates: make(map[string]*Gate),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.router == nil {
		h.router = chi.NewRouter()
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Router exposes the underlying chi router for mounting non-gated subtrees.
func (h *Host) Router() chi.Router {
	return h.router
}

// RouteMeta is the per-route capability declaration consulted by gates when
// a route is registered.
type RouteMeta struct {
	// Identities lists the gate keywords whose resolved identity the
	// handler wants. An empty list makes the route public.
	Identities []string
}

func (m RouteMeta) requires(keyword string) bool {
	for _, kw := range m.Identities {
		if kw == keyword {
			return true
		}
	}
	return false
}

// RouteOption adds a capability declaration to a route registration.
type RouteOption func(*RouteMeta)

// WithIdentity declares that the route requires the identity provided by
// the gate attached under keyword. The handler receives it via
// gate.IdentityFrom(r.Context(), keyword).
func WithIdentity(keyword string) RouteOption {
	return func(m *RouteMeta) {
		m.Identities = append(m.Identities, keyword)
	}
}

// Handle registers a route. Every attached gate is applied as a filter;
// gates whose keyword the route does not declare leave the handler
// untouched. Declaring a keyword with no attached gate is a setup error.
func (h *Host) Handle(method, pattern string, handler http.HandlerFunc, opts ...RouteOption) error {
	var meta RouteMeta
	for _, opt := range opts {
		opt(&meta)
	}

	h.mu.Lock()
	for _, kw := range meta.Identities {
		if _, ok := h.gates[kw]; !ok {
			h.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrUnknownKeyword, kw)
		}
	}
	wrapped := handler
	for _, g := range h.gates {
		wrapped = g.Wrap(wrapped, meta)
	}
	h.mu.Unlock()

	h.router.MethodFunc(method, pattern, wrapped)
	return nil
}

// attach records the gate under its keyword and registers the gate-owned
// endpoints. Called by Gate.Attach.
func (h *Host) attach(g *Gate) error {
	h.mu.Lock()
	if _, ok := h.gates[g.keyword]; ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateKeyword, g.keyword)
	}
	h.gates[g.keyword] = g
	h.mu.Unlock()

	h.router.Post(g.routePath("login"), g.LoginHandler())
	h.router.Post(g.routePath("logout"), g.LogoutHandler())
	h.router.Post(g.routePath("changepassword"), g.ChangePasswordHandler())
	return nil
}
