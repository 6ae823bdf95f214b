// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/assets"
	"github.com/labstack/echo/v4"
)

// findAssets returns the public paths of the bundled CSS and JS.
func findAssets() *appcontext.Assets {
	a := &appcontext.Assets{
		CSSPath: assets.CSSPath(),
		JSPath:  assets.JSPath(),
	}
	slog.Debug("assets loaded", "css", a.CSSPath, "js", a.JSPath)
	return a
}

// staticHandler serves the embedded assets below /static.
func staticHandler() echo.HandlerFunc {
	return echo.WrapHandler(http.StripPrefix("/static", assets.FileServer()))
}

// assetsToContext stores the asset paths for templates.
func assetsToContext(a *appcontext.Assets) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := appcontext.WithAssets(c.Request().Context(), a)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
