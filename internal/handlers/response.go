package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Response is the envelope of every JSON body.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func successMessage(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// NewHTTPErrorHandler renders errors in the response envelope. Store failures are
// logged with their cause and reported to clients without detail.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, Response) {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		conflictErr   *apperr.ConflictError
		storeErr      *apperr.StoreError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Response{Error: validationErr.Message, Details: validationErr.Details}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, Response{Error: notFoundErr.Error()}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, Response{Error: conflictErr.Message}
	case errors.As(err, &storeErr):
		return http.StatusInternalServerError, Response{Error: "Internal server error"}
	case errors.As(err, &httpErr):
		if httpErr.Internal != nil {
			var inner *echo.HTTPError
			if errors.As(httpErr.Internal, &inner) {
				httpErr = inner
			}
		}
		if httpErr.Code == http.StatusNotFound && httpErr.Message == echo.ErrNotFound.Message {
			return http.StatusNotFound, Response{Error: "Route not found"}
		}
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = fmt.Sprint(httpErr.Message)
		}
		if httpErr.Code >= http.StatusInternalServerError {
			msg = "Internal server error"
		}
		return httpErr.Code, Response{Error: msg}
	default:
		return http.StatusInternalServerError, Response{Error: "Internal server error"}
	}
}
