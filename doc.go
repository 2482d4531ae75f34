// Package authgate provides a pluggable session-authentication gate for Go
// HTTP applications. A Gate intercepts requests, resolves a session
// credential (cookie or bearer token) to a user identity through an external
// identity store, and decides whether the protected handler runs or the
// client is challenged to log in.
//
// The package is split into focused subpackages:
//
//   - pkg/identity — the identity-store contract the gate calls, plus an
//     in-memory implementation for tests and samples
//   - pkg/gate — the session gate itself: configuration, credential
//     transports, session resolution, route gating, and the
//     login/logout/changepassword endpoints
//   - pkg/cookie — cookie management with sane defaults
//   - pkg/pgstore — a PostgreSQL-backed identity store (pgx + goose)
//   - pkg/httpserver — graceful HTTP serving glue
//
// The root package contains only the Response machinery shared by gate
// endpoint logic: handlers produce a Response value (JSON, HTML, redirect)
// and the HTTP boundary renders it. Returning a redirect is terminal by
// construction; no handler code runs after the value is produced.
package authgate
