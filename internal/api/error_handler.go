package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/favboard/favboard-api/internal/api/handler"
	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/pkg/logger"
)

const internalErrorMessage = "something went wrong, please try again later"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"status": <code>, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Status)
			return
		}
		_ = c.JSON(resp.Status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) handler.ErrorResponse {
	// Echo's own errors (unknown route, 405, body too large, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprintf("%v", he.Message)
		}
		return handler.ErrorResponse{Status: he.Code, Message: msg}
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return handler.ErrorResponse{
			Status:  http.StatusUnprocessableEntity,
			Message: "validation failed",
			Errors:  ve.Fields,
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return handler.ErrorResponse{Status: http.StatusUnauthorized, Message: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return handler.ErrorResponse{Status: http.StatusUnauthorized, Message: domain.ErrUnauthorized.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return handler.ErrorResponse{Status: http.StatusForbidden, Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return handler.ErrorResponse{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return handler.ErrorResponse{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return handler.ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	l := logger.FromContext(c.Request().Context())
	if l.GetLevel() == zerolog.Disabled {
		l = &log
	}
	l.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return handler.ErrorResponse{Status: http.StatusInternalServerError, Message: internalErrorMessage}
}
