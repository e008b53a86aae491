package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/middleware"
	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated viewer. Routes using it sit behind
// an auth middleware, so a missing id is a wiring error surfaced as 401.
func getUserIDFromContext(c echo.Context) (uint, error) {
	id, ok := middleware.ViewerID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	return id, nil
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid " + label)
	}
	return uint(id), nil
}

// pageRequest normalizes ?page and ?limit. Unparseable values count as absent.
func pageRequest(c echo.Context, limits services.PageLimits) services.PageRequest {
	page, _ := strconv.Atoi(strings.TrimSpace(c.QueryParam("page")))
	limit, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("limit")))
	return limits.Normalize(page, limit, err == nil)
}

func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("Invalid request payload")
	}
	return nil
}

// bindAndValidate binds the JSON body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := bindRequest(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}
