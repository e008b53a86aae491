package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Social Media API is running",
		"version": Version,
	})
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
