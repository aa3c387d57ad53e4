package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// principal extracts the authenticated username injected by the Auth
// middleware. Its presence proves the middleware ran; an empty value means
// the route was wired without authentication, which is a request-level error,
// not a panic.
func principal(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
