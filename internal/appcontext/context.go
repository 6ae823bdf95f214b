// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext stores per-request values in the request context so
// handlers and templates read them the same way.
package appcontext

import (
	"context"

	"codeberg.org/oliverandrich/go-storefront/internal/ctxkeys"
	"codeberg.org/oliverandrich/go-storefront/internal/htmx"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

// Assets holds paths to static assets.
type Assets struct {
	CSSPath string
	JSPath  string
}

// WithUser stores the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxkeys.User{}, user)
}

// User returns the authenticated user, or nil if not authenticated.
func User(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ctxkeys.User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the user is authenticated.
func IsAuthenticated(ctx context.Context) bool {
	return User(ctx) != nil
}

// WithAssets stores the asset paths.
func WithAssets(ctx context.Context, assets *Assets) context.Context {
	ctx = context.WithValue(ctx, ctxkeys.CSSPath{}, assets.CSSPath)
	return context.WithValue(ctx, ctxkeys.JSPath{}, assets.JSPath)
}

// CSSPath returns the path to the stylesheet.
func CSSPath(ctx context.Context) string {
	if path, ok := ctx.Value(ctxkeys.CSSPath{}).(string); ok {
		return path
	}
	return "/static/css/styles.css"
}

// JSPath returns the path to the script.
func JSPath(ctx context.Context) string {
	if path, ok := ctx.Value(ctxkeys.JSPath{}).(string); ok {
		return path
	}
	return "/static/js/app.js"
}

// WithCSRFToken stores the CSRF token.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkeys.CSRFToken{}, token)
}

// CSRFToken returns the CSRF token.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(ctxkeys.CSRFToken{}).(string); ok {
		return token
	}
	return ""
}

// WithFlash stores the flash message for this page.
func WithFlash(ctx context.Context, message string) context.Context {
	return context.WithValue(ctx, ctxkeys.Flash{}, message)
}

// Flash returns the flash message for this page.
func Flash(ctx context.Context) string {
	if msg, ok := ctx.Value(ctxkeys.Flash{}).(string); ok {
		return msg
	}
	return ""
}

// WithHtmx stores the parsed htmx headers.
func WithHtmx(ctx context.Context, req *htmx.Request) context.Context {
	return context.WithValue(ctx, ctxkeys.Htmx{}, req)
}

// Htmx returns the parsed htmx headers. It never returns nil.
func Htmx(ctx context.Context) *htmx.Request {
	if req, ok := ctx.Value(ctxkeys.Htmx{}).(*htmx.Request); ok {
		return req
	}
	return &htmx.Request{}
}
