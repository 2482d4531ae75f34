package identity

import "errors"

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("identity: user not found")

	// ErrUserExists indicates a user with the same username already exists.
	ErrUserExists = errors.New("identity: user already exists")
)
