// Package gate implements a session-authentication gate that sits between an
// HTTP router and an external identity store.
//
// A Gate owns a single credential transport — a named cookie when
// app.cookie_name is configured, the Authorization Bearer header otherwise —
// and resolves the carried session key through identity.Store.CheckKey on
// every request. There is no per-request mutable state inside the gate; all
// authentication state lives in the store.
//
// Routes are registered on a Host. Protection is an explicit per-route
// capability: a route declares WithIdentity(keyword) to receive the resolved
// identity under that keyword, and routes that do not declare it are public
// and pass through the gate untouched. Several gates with distinct keywords
// can share one host; attaching a second gate with an already-taken keyword
// fails at setup time.
//
// Each attached gate also contributes three endpoints under its configured
// route prefix: POST /login, POST /logout, and POST /changepassword. Login
// negotiates JSON versus form bodies on the request Content-Type, sets the
// session cookie and redirects on success in cookie mode, or returns the
// issued key as a Bearer token in header mode.
//
//	cfg, err := gate.LoadConfig("app.yaml")
//	g, err := gate.New(cfg, gate.WithStore(store))
//	host := gate.NewHost()
//	if err := g.Attach(host); err != nil { ... }
//	host.Handle(http.MethodGet, "/hello/{name}", hello, gate.WithIdentity("user"))
package gate
