// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/handlers"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"github.com/labstack/echo/v4"
)

// LoadUser loads the session user from the database into the request
// context. Sessions of deleted users are ignored.
func LoadUser(sessions *session.Manager, repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isUntracked(c.Request().URL.Path) {
				return next(c)
			}

			data, err := sessions.Parse(c.Request())
			if err != nil || data == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			user, err := repo.GetUserByID(ctx, data.UserID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					slog.ErrorContext(ctx, "session_user_load_failed", "user_id", data.UserID, "error", err)
				}
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(appcontext.WithUser(ctx, user)))
			return next(c)
		}
	}
}

// RequireAuth sends anonymous users to the login page. GET requests come
// back to the requested page after login.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appcontext.IsAuthenticated(c.Request().Context()) {
				return next(c)
			}

			target := "/users/login"
			if c.Request().Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			}
			return handlers.Redirect(c, http.StatusSeeOther, target)
		}
	}
}
