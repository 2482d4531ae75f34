package authgate

import (
	"encoding/json"
	"net/http"
)

// Response renders itself to an http.ResponseWriter. Implementations set
// headers, status code, and body. Endpoint logic returns a Response instead
// of writing to the ResponseWriter directly, which makes redirects and
// errors terminal values: once returned, nothing else runs.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a response that encodes body as JSON with the given status.
func JSON(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect creates a redirect response with status 302 (Found).
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusFound}
}

// RedirectWithCode creates a redirect response with a specific status code.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type htmlResponse struct {
	status int
	body   string
}

func (h htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	_, err := w.Write([]byte(h.body))
	return err
}

// HTML creates a response that writes body as text/html with the given status.
func HTML(status int, body string) Response {
	return htmlResponse{status: status, body: body}
}

type textResponse struct {
	status int
	body   string
}

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(t.status)
	_, err := w.Write([]byte(t.body))
	return err
}

// Text creates a plain-text response with the given status.
func Text(status int, body string) Response {
	return textResponse{status: status, body: body}
}

// Handler adapts a Response-producing function to http.HandlerFunc.
// Render errors surface as 500 unless the response already wrote a status.
func Handler(fn func(r *http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := resp.Render(w, r); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
