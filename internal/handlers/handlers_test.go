// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/config"
	"codeberg.org/oliverandrich/go-storefront/internal/handlers"
	"codeberg.org/oliverandrich/go-storefront/internal/htmx"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"codeberg.org/oliverandrich/go-storefront/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	// Initialize i18n for template rendering
	_ = i18n.Init()
}

const testHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(&config.SessionConfig{
		CookieName: "_session",
		MaxAge:     3600,
		HashKey:    testHashKey,
	}, false)
	require.NoError(t, err)
	return mgr
}

// prepare attaches the English locale and, if given, the user to the
// request of c.
func prepare(c echo.Context, user *models.User) {
	ctx := i18n.WithLocale(c.Request().Context(), language.English)
	if user != nil {
		ctx = appcontext.WithUser(ctx, user)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// recordingSender keeps outgoing mail in memory.
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To, Subject, Body string
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (s *recordingSender) messages() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestNew(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	h := handlers.New(repo)

	assert.NotNil(t, h)
}

func TestHealth(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	h := handlers.New(repo)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)

	err := h.Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth_DatabaseDown(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	require.NoError(t, db.Close())
	h := handlers.New(repo)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHome(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestProduct(t, repo, "Teapot", 2500)
	h := handlers.New(repo)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)
	prepare(c, nil)

	err := h.Home(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "Teapot")
	assert.Contains(t, rec.Body.String(), "$25.00")
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next     string
		expected string
	}{
		{"", "/"},
		{"/orders", "/orders"},
		{"/orders/order/3?x=1", "/orders/order/3?x=1"},
		{"//evil.example.com", "/"},
		{"/\\evil.example.com", "/"},
		{"https://evil.example.com/", "/"},
		{"orders", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.expected, handlers.SafeNext(tt.next, "/"))
		})
	}
}

func TestRedirect_Plain(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	require.NoError(t, handlers.Redirect(c, http.StatusSeeOther, "/users/login"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRedirect_HtmxPartial(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/", nil, map[string]string{
		htmx.HeaderRequest: "true",
	})
	ctx := appcontext.WithHtmx(c.Request().Context(), htmx.ParseRequest(c.Request()))
	c.SetRequest(c.Request().WithContext(ctx))

	require.NoError(t, handlers.Redirect(c, http.StatusSeeOther, "/users/login"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/users/login", rec.Header().Get(htmx.HeaderRedirect))
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
}

func TestErrorHandler_NotFound(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/missing", nil)
	prepare(c, nil)

	handlers.ErrorHandler(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestErrorHandler_CustomMessage(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/users/login", nil)
	prepare(c, nil)

	handlers.ErrorHandler(echo.NewHTTPError(http.StatusForbidden, "invalid csrf token"), c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid csrf token")
}

func TestErrorHandler_InternalHidesDetails(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)
	prepare(c, nil)

	handlers.ErrorHandler(errors.New("database exploded"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database exploded")
	assert.Contains(t, rec.Body.String(), "Server error")
}

func TestErrorHandler_Head(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodHead, "/missing", nil)

	handlers.ErrorHandler(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
