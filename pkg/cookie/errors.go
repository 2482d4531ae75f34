package cookie

import "errors"

// ErrCookieNotFound is returned by Get when the request carries no cookie
// with the requested name.
var ErrCookieNotFound = errors.New("cookie: not found")
