package pgstore

import "errors"

var (
	ErrEmptyDSN                = errors.New("pgstore: empty connection string")
	ErrFailedToParseConfig     = errors.New("pgstore: failed to parse connection config")
	ErrFailedToConnect         = errors.New("pgstore: failed to open connection")
	ErrFailedToApplyMigrations = errors.New("pgstore: failed to apply migrations")
)
