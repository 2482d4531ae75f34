package gate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/gate"
	"github.com/dmitrymomot/authgate/pkg/identity"
)

// MockStore is a mock implementation of identity.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CheckKey(ctx context.Context, key string) (identity.Resolution, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(identity.Resolution), args.Error(1)
}

func (m *MockStore) FindUser(ctx context.Context, userID int64) (*identity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockStore) ValidateUser(ctx context.Context, username, password string, extra map[string]any) (string, bool, int64, error) {
	args := m.Called(ctx, username, password, extra)
	return args.String(0), args.Bool(1), args.Get(2).(int64), args.Error(3)
}

func (m *MockStore) KillSessions(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) ChangePassword(ctx context.Context, userID int64, newPassword, oldPassword string) (identity.Status, error) {
	args := m.Called(ctx, userID, newPassword, oldPassword)
	return args.Get(0).(identity.Status), args.Error(1)
}

// testConfig mirrors the historical sample configuration. cookieName "" picks
// bearer-header transport.
func testConfig(t *testing.T, cookieName string) gate.Config {
	t.Helper()

	cfg, err := gate.ConfigFromMap(map[string]map[string]string{
		"app": {
			"name":        "SAMPLE",
			"cookie_name": cookieName,
			"root_dir":    t.TempDir(),
		},
		"userspace": {"name": "SAMPLE"},
	})
	require.NoError(t, err)
	return cfg
}

// newTestGate builds a gate over a mock store.
func newTestGate(t *testing.T, cookieName string, store identity.Store) *gate.Gate {
	t.Helper()

	g, err := gate.New(testConfig(t, cookieName), gate.WithStore(store))
	require.NoError(t, err)
	return g
}
