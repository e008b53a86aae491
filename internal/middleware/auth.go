package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ViewerIDKey holds the authenticated user's id on the echo context.
const ViewerIDKey = "viewerID"

// UserLookup is the slice of the identity store the auth middlewares need.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// ViewerID returns the id set by an auth middleware.
func ViewerID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ViewerIDKey).(uint)
	return id, ok && id > 0
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}
