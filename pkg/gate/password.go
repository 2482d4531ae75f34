package gate

import (
	"net/http"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/pkg/identity"
)

// changedResponse is the change-password success body.
type changedResponse struct {
	RC      int    `json:"rc"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// ChangePasswordHandler returns the POST changepassword endpoint handler.
func (g *Gate) ChangePasswordHandler() http.HandlerFunc {
	return authgate.Handler(g.changePassword)
}

// changePassword requires a valid current session. An invalid session
// cannot authorize the change, so it degrades to the logout path instead of
// an error. Mismatched new passwords fail before the store is contacted.
func (g *Gate) changePassword(r *http.Request) authgate.Response {
	res, err := g.ResolveSession(r.Context(), r)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "session resolution failed", "error", err)
		return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	if res.Status != identity.StatusOK {
		return g.logout(r)
	}

	req, err := decodeChangePassword(r)
	if err != nil {
		return authgate.Errorf(http.StatusBadRequest, "Malformed changepassword request")
	}

	if req.NewPassword1 != req.NewPassword2 {
		return authgate.Errorf(http.StatusBadRequest, "New passwords don't match")
	}

	status, err := g.store.ChangePassword(r.Context(), res.UserID, req.NewPassword1, req.OldPassword)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "password change failed", "user_id", res.UserID, "error", err)
		return authgate.Errorf(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	switch status {
	case identity.StatusRejected:
		return authgate.Errorf(http.StatusUnauthorized, "Bad old password")
	case identity.StatusNotFound:
		// The session became invalid mid-request; treat as logout.
		return g.logout(r)
	default:
		g.logger.InfoContext(r.Context(), "password changed", "username", res.Username, "user_id", res.UserID)
		return authgate.JSON(http.StatusOK, changedResponse{
			RC:      http.StatusOK,
			Text:    "OK",
			Message: "Password changed",
		})
	}
}
