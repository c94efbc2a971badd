package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anonto42/pegawe/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// NewHTTPErrorHandler renders every error as {"error": "..."} and logs it.
// Store failures never leak their text to the client.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := classify(err)
		attrs := []any{
			slog.Int("status", code),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("Request failed", attrs...)
		} else {
			logger.Debug("Request rejected", attrs...)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, echo.Map{"error": msg})
		}
		if err != nil {
			logger.Error("Failed to write error response", slog.String("error", err.Error()))
		}
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, internalErrorMessage
		}
		if s, ok := he.Message.(string); ok {
			return he.Code, s
		}
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, repositories.ErrDuplicate), errors.Is(err, repositories.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
