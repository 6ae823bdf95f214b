// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/forms"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/services/auth"
	"codeberg.org/oliverandrich/go-storefront/internal/services/basket"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"codeberg.org/oliverandrich/go-storefront/internal/services/verification"
	"codeberg.org/oliverandrich/go-storefront/internal/templates"
	"github.com/labstack/echo/v4"
)

// UserHandlers contains the account handlers: login, registration,
// profile and email verification.
type UserHandlers struct {
	flasher
	auth         *auth.Service
	verification *verification.Service
	baskets      *basket.Service
}

// NewUsers creates the account handlers.
func NewUsers(authService *auth.Service, verificationService *verification.Service, baskets *basket.Service, sessions *session.Manager) *UserHandlers {
	return &UserHandlers{
		flasher:      flasher{sessions: sessions},
		auth:         authService,
		verification: verificationService,
		baskets:      baskets,
	}
}

// LoginPage renders the login form.
func (h *UserHandlers) LoginPage(c echo.Context) error {
	next := c.QueryParam("next")
	if currentUser(c) != nil {
		return Redirect(c, http.StatusFound, SafeNext(next, "/"))
	}
	return Render(c, http.StatusOK, templates.Login(forms.LoginForm{Next: next}, nil))
}

// Login checks the credentials and starts a session.
func (h *UserHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	if errs := forms.Validate(ctx, form); errs.Any() {
		form.Password = ""
		return Render(c, http.StatusUnprocessableEntity, templates.Login(form, errs))
	}

	user, err := h.auth.Login(ctx, form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		form.Password = ""
		errs := forms.Errors{forms.NonField: i18n.T(ctx, "login_invalid")}
		return Render(c, http.StatusUnprocessableEntity, templates.Login(form, errs))
	}
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	cookie, err := h.sessions.Create(user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	c.SetCookie(cookie)

	return Redirect(c, http.StatusSeeOther, SafeNext(form.Next, "/"))
}

// Logout ends the session.
func (h *UserHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return Redirect(c, http.StatusSeeOther, "/")
}

// RegisterPage renders the registration form.
func (h *UserHandlers) RegisterPage(c echo.Context) error {
	if currentUser(c) != nil {
		return Redirect(c, http.StatusFound, "/")
	}
	help := h.auth.Policy().HelpTexts(c.Request().Context())
	return Render(c, http.StatusOK, templates.Register(forms.RegisterForm{}, nil, help))
}

// Register creates an unverified account, sends the verification link
// and redirects to the login page.
func (h *UserHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()
	help := h.auth.Policy().HelpTexts(ctx)

	var form forms.RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Normalize()

	invalid := func(errs forms.Errors) error {
		form.Password, form.PasswordConfirm = "", ""
		return Render(c, http.StatusUnprocessableEntity, templates.Register(form, errs, help))
	}

	if errs := forms.Validate(ctx, form); errs.Any() {
		return invalid(errs)
	}

	user, err := h.auth.Register(ctx, auth.RegisterParams{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
	})
	var pwErr *auth.PasswordError
	switch {
	case errors.As(err, &pwErr):
		return invalid(forms.Errors{"password1": strings.Join(pwErr.Messages(ctx), " ")})
	case errors.Is(err, auth.ErrUsernameTaken):
		return invalid(forms.Errors{"username": i18n.T(ctx, "username_taken")})
	case errors.Is(err, auth.ErrEmailTaken):
		return invalid(forms.Errors{"email": i18n.T(ctx, "email_taken")})
	case err != nil:
		return fmt.Errorf("registering user: %w", err)
	}

	if err := h.verification.Issue(ctx, user); err != nil {
		slog.ErrorContext(ctx, "verification_issue_failed", "user_id", user.ID, "error", err)
	}

	h.setFlash(c, i18n.T(ctx, "register_success"))
	return Redirect(c, http.StatusSeeOther, "/users/login")
}

// ProfilePage renders the profile form and the basket.
func (h *UserHandlers) ProfilePage(c echo.Context) error {
	user := currentUser(c)
	form := forms.ProfileForm{FirstName: user.FirstName, LastName: user.LastName}
	return h.renderProfile(c, http.StatusOK, form, nil)
}

// Profile updates the user's names.
func (h *UserHandlers) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	var form forms.ProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)

	if errs := forms.Validate(ctx, form); errs.Any() {
		return h.renderProfile(c, http.StatusUnprocessableEntity, form, errs)
	}

	if _, err := h.auth.UpdateProfile(ctx, user.ID, form.FirstName, form.LastName); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	h.setFlash(c, i18n.T(ctx, "profile_updated"))
	return Redirect(c, http.StatusSeeOther, "/users/profile")
}

func (h *UserHandlers) renderProfile(c echo.Context, status int, form forms.ProfileForm, errs forms.Errors) error {
	user := currentUser(c)
	lines, err := h.baskets.Lines(c.Request().Context(), user.ID)
	if err != nil {
		return fmt.Errorf("loading basket: %w", err)
	}
	return Render(c, status, templates.Profile(user, form, errs, lines))
}

// EmailVerification handles a confirmation link. Unknown links redirect to
// the home page.
func (h *UserHandlers) EmailVerification(c echo.Context) error {
	ctx := c.Request().Context()

	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return Redirect(c, http.StatusFound, "/")
	}
	code, err := url.PathUnescape(c.Param("code"))
	if err != nil {
		return Redirect(c, http.StatusFound, "/")
	}

	result, err := h.verification.Confirm(ctx, email, code)
	if err != nil {
		return fmt.Errorf("confirming email: %w", err)
	}

	switch result {
	case verification.Verified:
		return Render(c, http.StatusOK, templates.EmailVerification(false))
	case verification.Expired:
		return Render(c, http.StatusOK, templates.EmailVerification(true))
	default:
		slog.WarnContext(ctx, "verification_invalid", "email", email)
		return Redirect(c, http.StatusFound, "/")
	}
}
