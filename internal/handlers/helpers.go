// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/htmx"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// Redirect sends the client to target. Requests whose response htmx would
// swap into a page fragment get an HX-Redirect instead.
func Redirect(c echo.Context, code int, target string) error {
	if appcontext.Htmx(c.Request().Context()).PartialSwap() {
		htmx.Redirect(c.Response(), target)
		return nil
	}
	return c.Redirect(code, target)
}

// SafeNext returns next if it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// backURL returns the local part of the Referer when it points at this
// host, otherwise fallback.
func backURL(c echo.Context, fallback string) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Host != c.Request().Host || ref.Path == "" {
		return fallback
	}
	return SafeNext(ref.RequestURI(), fallback)
}

// pathID parses a positive integer path parameter. It returns echo's 404
// for anything else.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// currentUser returns the user loaded by the auth middleware.
func currentUser(c echo.Context) *models.User {
	return appcontext.User(c.Request().Context())
}

// setFlash attaches a flash cookie for the next page.
func (s *flasher) setFlash(c echo.Context, message string) {
	cookie, err := s.sessions.Flash(message)
	if err != nil {
		return
	}
	c.SetCookie(cookie)
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Error"
}
