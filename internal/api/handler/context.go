package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// actorClaims is the authenticated identity extracted from context.
type actorClaims struct {
	UserID    string
	Name      string
	Role      string
	SessionID string
}

// ctxActor extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: a missing role or user id
// means the middleware did not run, or the token is structurally valid but
// operationally unusable.
func ctxActor(c echo.Context) (actorClaims, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	if role == "" || userID == "" {
		return actorClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	sessionID, _ := c.Get("session_id").(string)
	return actorClaims{UserID: userID, Name: name, Role: role, SessionID: sessionID}, nil
}
