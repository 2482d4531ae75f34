// Package cookie provides a small cookie manager with secure defaults
// (Path "/", HttpOnly, SameSite=Lax). Values are carried verbatim: the
// session gate stores opaque server-issued keys whose integrity is enforced
// by the identity store, so client-side signing or encryption would add
// nothing.
package cookie
