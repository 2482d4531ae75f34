// Package pgstore implements identity.Store on PostgreSQL using pgx/v5.
//
// Users are stored with bcrypt password hashes; sessions are rows keyed by
// an opaque UUID credential with a server-side expiry. CheckKey only ever
// resolves unexpired sessions, ValidateUser issues a fresh key per login,
// and KillSessions revokes every key a user holds.
//
// Schema migrations are embedded and applied with goose:
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pgstore.Migrate(ctx, pool, logger); err != nil { ... }
//	store := pgstore.New(pool)
package pgstore
