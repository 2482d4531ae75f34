package gate_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/gate"
	"github.com/dmitrymomot/authgate/pkg/identity"
)

func TestWrapPublicRouteIdentity(t *testing.T) {
	t.Parallel()

	g := newTestGate(t, "sample_session_id", new(MockStore))

	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {}

	// A route that does not declare the gate's keyword comes back as the
	// very same handler, no wrapping overhead.
	wrapped := g.Wrap(handler, gate.RouteMeta{})
	assert.Equal(t, fmt.Sprintf("%p", handler), fmt.Sprintf("%p", wrapped))

	wrapped = g.Wrap(handler, gate.RouteMeta{Identities: []string{"other"}})
	assert.Equal(t, fmt.Sprintf("%p", handler), fmt.Sprintf("%p", wrapped))
}

func TestHostPublicRouteSkipsStore(t *testing.T) {
	t.Parallel()

	store := new(MockStore)
	g := newTestGate(t, "sample_session_id", store)

	host := gate.NewHost()
	require.NoError(t, g.Attach(host))
	require.NoError(t, host.Handle(http.MethodGet, "/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<h3>Hello world</h3>")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sample_session_id", Value: "skjasldkajd"})
	host.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h3>Hello world</h3>", w.Body.String())
	store.AssertNotCalled(t, "CheckKey", mock.Anything, mock.Anything)
}

func TestHostProtectedRoute(t *testing.T) {
	t.Parallel()

	newHost := func(t *testing.T, store identity.Store) (*gate.Host, *gate.Gate) {
		g := newTestGate(t, "sample_session_id", store)
		host := gate.NewHost()
		require.NoError(t, g.Attach(host))
		require.NoError(t, host.Handle(http.MethodGet, "/hello/{name}", func(w http.ResponseWriter, r *http.Request) {
			user, ok := gate.IdentityFrom(r.Context(), "user")
			require.True(t, ok)
			fmt.Fprintf(w, "hello %s", user["username"])
		}, gate.WithIdentity("user")))
		return host, g
	}

	t.Run("valid session runs handler with identity", func(t *testing.T) {
		store := new(MockStore)
		store.On("CheckKey", mock.Anything, "skjasldkajd").Return(identity.Resolution{
			Status: identity.StatusOK, Username: "user21", UserID: int64(24),
		}, nil)
		store.On("FindUser", mock.Anything, int64(24)).Return(&identity.User{ID: 24, Username: "user21"}, nil)

		host, _ := newHost(t, store)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/hello/world", nil)
		r.AddCookie(&http.Cookie{Name: "sample_session_id", Value: "skjasldkajd"})
		host.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello user21", w.Body.String())
	})

	t.Run("missing session renders login challenge", func(t *testing.T) {
		host, _ := newHost(t, new(MockStore))

		w := httptest.NewRecorder()
		host.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello/world?x=1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		// Current request URL becomes the proceed target.
		assert.Contains(t, w.Body.String(), `name="proceed" value="/hello/world?x=1"`)
		assert.Contains(t, w.Body.String(), `name="username"`)
	})

	t.Run("invalid session renders login challenge", func(t *testing.T) {
		store := new(MockStore)
		store.On("CheckKey", mock.Anything, "stale").Return(identity.Resolution{Status: identity.StatusNotFound}, nil)

		host, _ := newHost(t, store)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/hello/world", nil)
		r.AddCookie(&http.Cookie{Name: "sample_session_id", Value: "stale"})
		host.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="proceed" value="/hello/world"`)
	})
}

func TestAttachDuplicateKeyword(t *testing.T) {
	t.Parallel()

	host := gate.NewHost()

	first := newTestGate(t, "sample_session_id", new(MockStore))
	require.NoError(t, first.Attach(host))

	second := newTestGate(t, "", new(MockStore))
	err := second.Attach(host)
	assert.ErrorIs(t, err, gate.ErrDuplicateKeyword)
}

func TestAttachDistinctKeywords(t *testing.T) {
	t.Parallel()

	userStore := new(MockStore)
	userStore.On("CheckKey", mock.Anything, "user-key").Return(identity.Resolution{
		Status: identity.StatusOK, Username: "user21", UserID: int64(24),
	}, nil)
	userStore.On("FindUser", mock.Anything, int64(24)).Return(&identity.User{ID: 24, Username: "user21"}, nil)

	adminStore := new(MockStore)
	adminStore.On("CheckKey", mock.Anything, "admin-key").Return(identity.Resolution{
		Status: identity.StatusOK, Username: "root", UserID: int64(1),
	}, nil)
	adminStore.On("FindUser", mock.Anything, int64(1)).Return(&identity.User{ID: 1, Username: "root", Admin: true}, nil)

	userCfg, err := gate.ConfigFromMap(map[string]map[string]string{
		"app":       {"name": "SAMPLE", "cookie_name": "user_session", "root_dir": t.TempDir(), "keyword": "user"},
		"userspace": {"name": "SAMPLE"},
	})
	require.NoError(t, err)
	adminCfg, err := gate.ConfigFromMap(map[string]map[string]string{
		"app":       {"name": "ADMIN", "cookie_name": "admin_session", "root_dir": t.TempDir(), "keyword": "admin", "route_prefix": "/admin"},
		"userspace": {"name": "ADMIN"},
	})
	require.NoError(t, err)

	userGate, err := gate.New(userCfg, gate.WithStore(userStore))
	require.NoError(t, err)
	adminGate, err := gate.New(adminCfg, gate.WithStore(adminStore))
	require.NoError(t, err)

	host := gate.NewHost()
	require.NoError(t, userGate.Attach(host))
	require.NoError(t, adminGate.Attach(host))

	require.NoError(t, host.Handle(http.MethodGet, "/both", func(w http.ResponseWriter, r *http.Request) {
		user, _ := gate.IdentityFrom(r.Context(), "user")
		admin, _ := gate.IdentityFrom(r.Context(), "admin")
		fmt.Fprintf(w, "%s+%s", user["username"], admin["username"])
	}, gate.WithIdentity("user"), gate.WithIdentity("admin")))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/both", nil)
	r.AddCookie(&http.Cookie{Name: "user_session", Value: "user-key"})
	r.AddCookie(&http.Cookie{Name: "admin_session", Value: "admin-key"})
	host.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user21+root", w.Body.String())
}

func TestHandleUnknownKeyword(t *testing.T) {
	t.Parallel()

	host := gate.NewHost()
	err := host.Handle(http.MethodGet, "/x", func(w http.ResponseWriter, r *http.Request) {}, gate.WithIdentity("ghost"))
	assert.ErrorIs(t, err, gate.ErrUnknownKeyword)
}
