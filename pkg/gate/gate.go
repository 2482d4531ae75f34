package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"

	"github.com/dmitrymomot/authgate/pkg/cookie"
	"github.com/dmitrymomot/authgate/pkg/identity"
	"github.com/dmitrymomot/authgate/pkg/pgstore"
)

// Gate mediates between incoming requests and the identity store. A Gate is
// immutable after New and safe for concurrent use.
type Gate struct {
	cfg       Config
	keyword   string
	store     identity.Store
	transport transport
	cookies   *cookie.Manager
	logger    *slog.Logger
}

// Option configures a Gate during construction.
type Option func(*Gate)

// WithStore injects the identity store. Without it the gate opens a
// PostgreSQL store from the userspace DSN.
func WithStore(store identity.Store) Option {
	return func(g *Gate) {
		g.store = store
	}
}

// WithLogger sets the gate logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithCookieManager replaces the default cookie manager, e.g. to force the
// Secure attribute in production.
func WithCookieManager(mgr *cookie.Manager) Option {
	return func(g *Gate) {
		g.cookies = mgr
	}
}

// New validates cfg and builds a Gate. The credential transport is fixed
// here: cookie transport when app.cookie_name is set, bearer-header
// transport otherwise.
func New(cfg Config, opts ...Option) (*Gate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Gate{
		cfg:     cfg,
		keyword: cfg.keyword(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.cookies == nil {
		g.cookies = cookie.New()
	}

	if g.store == nil {
		if cfg.Userspace.DSN == "" {
			return nil, errors.Join(ErrNoStore, ErrMissingUserspace)
		}
		store, err := pgstore.Open(context.Background(), pgstore.Config{DSN: cfg.Userspace.DSN})
		if err != nil {
			return nil, errors.Join(ErrNoStore, err)
		}
		g.store = store
	}

	if cfg.App.CookieName != "" {
		g.transport = cookieTransport{cookies: g.cookies, name: cfg.App.CookieName}
	} else {
		g.transport = bearerTransport{}
	}

	return g, nil
}

// Keyword returns the identity injection-point name of this gate.
func (g *Gate) Keyword() string {
	return g.keyword
}

// routePath joins the configured prefix with a gate endpoint name.
func (g *Gate) routePath(endpoint string) string {
	return path.Join("/", g.cfg.App.RoutePrefix, endpoint)
}
