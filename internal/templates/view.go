// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

// View is the value every page template executes against. Its methods give
// templates access to request scoped values and translations.
type View struct {
	ctx   context.Context
	Title string
	Data  any
}

// T translates a message by ID.
func (v View) T(messageID string) string {
	return i18n.T(v.ctx, messageID)
}

// TData translates a message with template data given as key/value pairs.
func (v View) TData(messageID string, kv ...any) string {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			data[key] = kv[i+1]
		}
	}
	return i18n.TData(v.ctx, messageID, data)
}

// TPlural translates a message with plural support.
func (v View) TPlural(messageID string, count int64) string {
	return i18n.TPlural(v.ctx, messageID, int(count))
}

// Price formats an amount in cents.
func (v View) Price(cents int64) string {
	return i18n.FormatPrice(v.ctx, cents)
}

// Status translates an order status.
func (v View) Status(s models.OrderStatus) string {
	return i18n.T(v.ctx, s.MessageID())
}

// Locale returns the current locale.
func (v View) Locale() string {
	return i18n.GetLocale(v.ctx)
}

// CSRFToken returns the CSRF token.
func (v View) CSRFToken() string {
	return appcontext.CSRFToken(v.ctx)
}

// CSSPath returns the path to the hashed CSS file.
func (v View) CSSPath() string {
	return appcontext.CSSPath(v.ctx)
}

// JSPath returns the path to the hashed JS file.
func (v View) JSPath() string {
	return appcontext.JSPath(v.ctx)
}

// User returns the authenticated user, or nil.
func (v View) User() *models.User {
	return appcontext.User(v.ctx)
}

// Flash returns the flash message for this page.
func (v View) Flash() string {
	return appcontext.Flash(v.ctx)
}
