// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package appcontext_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/htmx"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUser(t *testing.T) {
	user := &models.User{ID: 123, Username: "testuser"}
	ctx := appcontext.WithUser(context.Background(), user)

	result := appcontext.User(ctx)

	assert.Equal(t, user, result)
	assert.True(t, appcontext.IsAuthenticated(ctx))
}

func TestUser_Nil(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, appcontext.User(ctx))
	assert.False(t, appcontext.IsAuthenticated(ctx))
}

func TestAssets(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "/static/css/styles.css", appcontext.CSSPath(ctx))
	assert.Equal(t, "/static/js/app.js", appcontext.JSPath(ctx))

	ctx = appcontext.WithAssets(ctx, &appcontext.Assets{
		CSSPath: "/static/css/styles.0123abcd.css",
		JSPath:  "/static/js/app.89abcdef.js",
	})
	assert.Equal(t, "/static/css/styles.0123abcd.css", appcontext.CSSPath(ctx))
	assert.Equal(t, "/static/js/app.89abcdef.js", appcontext.JSPath(ctx))
}

func TestCSRFTokenAndFlash(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, appcontext.CSRFToken(ctx))
	assert.Empty(t, appcontext.Flash(ctx))

	ctx = appcontext.WithCSRFToken(ctx, "token")
	ctx = appcontext.WithFlash(ctx, "hello")

	assert.Equal(t, "token", appcontext.CSRFToken(ctx))
	assert.Equal(t, "hello", appcontext.Flash(ctx))
}

func TestHtmx(t *testing.T) {
	assert.False(t, appcontext.Htmx(context.Background()).IsHtmx)

	ctx := appcontext.WithHtmx(context.Background(), &htmx.Request{IsHtmx: true})
	assert.True(t, appcontext.Htmx(ctx).IsHtmx)
}
