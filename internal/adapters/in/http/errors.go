package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// statusOf classifies an error returned by a handler. Domain error messages carry
// order numbers only, so they are safe to show; anything unclassified is hidden
// behind a generic message.
func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalErrorMessage
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errs.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrStatusTransitionIsInvalid),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, ports.ErrOrderNumberTaken):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// NewErrorHandler renders every error as an Error body and logs the ones that end in a 5xx.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusOf(err)
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
