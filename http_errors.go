package authgate

import "net/http"

// HTTPError is an HTTP-shaped failure that is both an error and a Response.
// Endpoint logic returns it where the original outcome is a status code with
// a plain-text body, e.g. a 401 on bad credentials.
type HTTPError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

// Render writes the error as a plain-text response.
func (e HTTPError) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(e.Code)
	_, err := w.Write([]byte(e.Error()))
	return err
}

// Errorf builds an HTTPError with the given status code and message.
func Errorf(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
