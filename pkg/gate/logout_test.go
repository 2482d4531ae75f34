package gate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/identity"
)

func TestLogoutValidSession(t *testing.T) {
	t.Parallel()

	store := new(MockStore)
	store.On("CheckKey", mock.Anything, "skjasldkajd").Return(identity.Resolution{
		Status: identity.StatusOK, Username: "user21", UserID: int64(24),
	}, nil)
	store.On("KillSessions", mock.Anything, int64(24)).Return(nil)

	g := newTestGate(t, "sample_session_id", store)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(&http.Cookie{Name: "sample_session_id", Value: "skjasldkajd"})
	g.LogoutHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	store.AssertExpectations(t)
}

func TestLogoutInvalidSession(t *testing.T) {
	t.Parallel()

	// Resolution fails: KillSessions must NOT be called, but the response
	// still clears the cookie and redirects home.
	store := new(MockStore)
	store.On("CheckKey", mock.Anything, "stale").Return(identity.Resolution{Status: identity.StatusNotFound}, nil)

	g := newTestGate(t, "sample_session_id", store)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(&http.Cookie{Name: "sample_session_id", Value: "stale"})
	g.LogoutHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	store.AssertNotCalled(t, "KillSessions", mock.Anything, mock.Anything)
}

func TestLogoutNoCredential(t *testing.T) {
	t.Parallel()

	store := new(MockStore)
	g := newTestGate(t, "sample_session_id", store)

	w := httptest.NewRecorder()
	g.LogoutHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	store.AssertNotCalled(t, "CheckKey", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "KillSessions", mock.Anything, mock.Anything)
}

func TestLogoutBearerTransport(t *testing.T) {
	t.Parallel()

	store := new(MockStore)
	store.On("CheckKey", mock.Anything, "skjasldkajd").Return(identity.Resolution{
		Status: identity.StatusOK, Username: "user21", UserID: int64(24),
	}, nil)
	store.On("KillSessions", mock.Anything, int64(24)).Return(nil)

	g := newTestGate(t, "", store)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Authorization", "Bearer skjasldkajd")
	g.LogoutHandler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	// Bearer mode has no cookie to clear.
	assert.Empty(t, w.Result().Cookies())
	store.AssertExpectations(t)
}
