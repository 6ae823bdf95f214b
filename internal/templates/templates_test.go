// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/appcontext"
	"codeberg.org/oliverandrich/go-storefront/internal/forms"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/templates"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func enCtx(t *testing.T) context.Context {
	t.Helper()
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.English)
	return appcontext.WithCSRFToken(ctx, "csrf-123")
}

func TestHome_Anonymous(t *testing.T) {
	html := render(t, enCtx(t), templates.Home([]models.Product{{ID: 1, Name: "Mug", Price: 1250}}))

	assert.Contains(t, html, "Mug")
	assert.Contains(t, html, "$12.50")
	assert.Contains(t, html, `href="/users/login"`)
	assert.NotContains(t, html, "/products/baskets/add/1")
}

func TestHome_Authenticated(t *testing.T) {
	ctx := appcontext.WithUser(enCtx(t), &models.User{ID: 1, Username: "alice"})

	html := render(t, ctx, templates.Home([]models.Product{{ID: 1, Name: "Mug", Price: 1250}}))

	assert.Contains(t, html, `action="/products/baskets/add/1"`)
	assert.Contains(t, html, `value="csrf-123"`)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, `action="/users/logout"`)
}

func TestLogin_ShowsErrorsAndFlash(t *testing.T) {
	ctx := appcontext.WithFlash(enCtx(t), "You have successfully registered!")

	html := render(t, ctx, templates.Login(
		forms.LoginForm{Username: "alice", Next: "/orders"},
		forms.Errors{forms.NonField: "Please enter a correct username and password."},
	))

	assert.Contains(t, html, "You have successfully registered!")
	assert.Contains(t, html, "Please enter a correct username and password.")
	assert.Contains(t, html, `value="alice"`)
	assert.Contains(t, html, `value="/orders"`)
}

func TestRegister_PasswordHelp(t *testing.T) {
	html := render(t, enCtx(t), templates.Register(forms.RegisterForm{}, nil, []string{"At least 8 characters"}))

	assert.Contains(t, html, "At least 8 characters")
	assert.Contains(t, html, `name="password2"`)
}

func TestProfile_Basket(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	ctx := appcontext.WithUser(enCtx(t), user)
	basket := []models.BasketLine{{ID: 7, ProductName: "Mug", Price: 1250, Quantity: 2}}

	html := render(t, ctx, templates.Profile(user, forms.ProfileForm{FirstName: "Alice"}, nil, basket))

	assert.Contains(t, html, "2 items")
	assert.Contains(t, html, "$25.00")
	assert.Contains(t, html, `action="/products/baskets/remove/7"`)
	assert.Contains(t, html, `href="/orders/order-create"`)
}

func TestOrders(t *testing.T) {
	orders := []models.Order{{ID: 3, Status: models.OrderPaid, Total: 5500, CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}}

	html := render(t, enCtx(t), templates.Orders(orders))

	assert.Contains(t, html, `href="/orders/order/3"`)
	assert.Contains(t, html, "Paid")
	assert.Contains(t, html, "$55.00")
}

func TestOrderDetail_Title(t *testing.T) {
	order := &models.Order{
		ID:            42,
		Status:        models.OrderPaid,
		Total:         2500,
		BasketHistory: `{"purchased_items":[{"product_id":1,"product_name":"Mug","quantity":2,"price":1250,"sum":2500}],"total_sum":2500}`,
	}

	html := render(t, enCtx(t), templates.OrderDetail(order))

	assert.Contains(t, html, "<title>Order #42")
	assert.Contains(t, html, "Mug")
	assert.Contains(t, html, "$25.00")
}

func TestOrderCreate_FieldErrors(t *testing.T) {
	html := render(t, enCtx(t), templates.OrderCreate(forms.OrderForm{}, forms.Errors{"address": "This field is required."}, nil))

	assert.Contains(t, html, "This field is required.")
	assert.Contains(t, html, `action="/orders/order-create"`)
}

func TestEmailVerification(t *testing.T) {
	ctx := enCtx(t)

	assert.Contains(t, render(t, ctx, templates.EmailVerification(false)), "successfully verified")
	assert.Contains(t, render(t, ctx, templates.EmailVerification(true)), "new link has been sent")
}

func TestError(t *testing.T) {
	html := render(t, enCtx(t), templates.Error(404, ""))

	assert.Contains(t, html, "Page not found")
	assert.Contains(t, html, "404")
}

func TestRussianLayout(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.Russian)

	html := render(t, ctx, templates.OrderSuccess())

	assert.Contains(t, html, `lang="ru"`)
	assert.Contains(t, html, "Спасибо")
}
