// Package httpserver wraps net/http.Server with graceful shutdown on
// context cancellation or SIGINT/SIGTERM, structured logging, and
// environment-driven configuration. It is the serving glue used by sample
// applications; the gate itself is router-agnostic.
package httpserver
