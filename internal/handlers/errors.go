// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/go-storefront/internal/templates"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders error pages for errors returned by handlers and
// middleware. It is installed as echo's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && m != statusText(code) && code < http.StatusInternalServerError {
			message = m
		}
	}

	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request_failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if renderErr := Render(c, code, templates.Error(code, message)); renderErr != nil {
		slog.ErrorContext(c.Request().Context(), "error_page_failed", "error", renderErr)
		_ = c.String(code, statusText(code))
	}
}
