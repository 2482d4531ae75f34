package gate

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// Content negotiation is driven by the request Content-Type only, never by
// the Accept header: application/json means an API client, anything else is
// treated as a browser form post.

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Proceed  string `json:"proceed"`
}

type changePasswordRequest struct {
	OldPassword  string `json:"oldpassword"`
	NewPassword1 string `json:"newpassword1"`
	NewPassword2 string `json:"newpassword2"`
}

// isJSONRequest reports whether the request body is declared as JSON.
func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func decodeLogin(r *http.Request) (loginRequest, error) {
	var req loginRequest
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return loginRequest{}, fmt.Errorf("gate: decode login body: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return loginRequest{}, fmt.Errorf("gate: parse login form: %w", err)
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	req.Proceed = r.PostFormValue("proceed")
	return req, nil
}

func decodeChangePassword(r *http.Request) (changePasswordRequest, error) {
	var req changePasswordRequest
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return changePasswordRequest{}, fmt.Errorf("gate: decode changepassword body: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return changePasswordRequest{}, fmt.Errorf("gate: parse changepassword form: %w", err)
	}
	req.OldPassword = r.PostFormValue("oldpassword")
	req.NewPassword1 = r.PostFormValue("newpassword1")
	req.NewPassword2 = r.PostFormValue("newpassword2")
	return req, nil
}
