package identity

import "context"

// Status is the outcome of a session or password operation against the store.
type Status int

const (
	// StatusOK means the key resolved or the operation succeeded.
	StatusOK Status = iota
	// StatusNotFound means the key or user does not exist (or has expired).
	StatusNotFound
	// StatusRejected means the operation was refused, e.g. a wrong old
	// password on a change-password request.
	StatusRejected
)

// String returns a short lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving a session key. On StatusOK the
// identity fields are populated; otherwise they are zero values. The gate
// consumes resolutions verbatim and never mutates them.
type Resolution struct {
	Status   Status
	Username string
	UserID   int64
	Data     map[string]any
}

// User carries the attributes the store knows about an account.
type User struct {
	ID       int64
	Username string
	Email    string
	Admin    bool
	Extra    map[string]any
}

// Store is the identity-store contract the gate calls. Implementations must
// be safe for concurrent use; the gate treats the store as an opaque,
// thread-safe dependency and does not retry or mask its errors.
type Store interface {
	// CheckKey resolves a session key. A missing or expired key yields
	// StatusNotFound with a nil error; errors are reserved for transport
	// or query failures.
	CheckKey(ctx context.Context, key string) (Resolution, error)

	// FindUser returns the full attribute record for a user.
	FindUser(ctx context.Context, userID int64) (*User, error)

	// ValidateUser checks a username/password pair and, on success, issues
	// a new session key. A failed validation returns an empty key with a
	// nil error. The extra map carries optional session data to associate
	// with the new session.
	ValidateUser(ctx context.Context, username, password string, extra map[string]any) (key string, admin bool, userID int64, err error)

	// KillSessions revokes every session belonging to the user, not just
	// the current one.
	KillSessions(ctx context.Context, userID int64) error

	// ChangePassword replaces the user's password after verifying the old
	// one. StatusRejected means the old password was wrong, StatusNotFound
	// means the user no longer exists.
	ChangePassword(ctx context.Context, userID int64, newPassword, oldPassword string) (Status, error)
}
