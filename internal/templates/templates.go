// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates provides the storefront pages as templ components.
// Markup lives in embedded html/template files; each page is parsed
// together with the shared layout.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"codeberg.org/oliverandrich/go-storefront/internal/forms"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"home", "login", "register", "profile",
		"orders", "order", "order_create", "order_success",
		"email_verification", "error",
	} {
		pages[name] = template.Must(template.ParseFS(files, "html/layout.html", "html/"+name+".html"))
	}
}

// page renders a page template inside the layout.
func page(name string, title func(ctx context.Context) string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", View{ctx: ctx, Title: title(ctx), Data: data})
	})
}

func titled(messageID string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		return i18n.T(ctx, messageID)
	}
}

// FormData is shared by all pages that render a form.
type FormData[F any] struct {
	Form   F
	Errors forms.Errors
}

// Home lists the products.
func Home(products []models.Product) templ.Component {
	return page("home", titled("title_home"), products)
}

// Login renders the login form.
func Login(form forms.LoginForm, errs forms.Errors) templ.Component {
	return page("login", titled("title_login"), FormData[forms.LoginForm]{Form: form, Errors: errs})
}

// RegisterData is the data of the registration page.
type RegisterData struct {
	FormData[forms.RegisterForm]
	PasswordHelp []string
}

// Register renders the registration form.
func Register(form forms.RegisterForm, errs forms.Errors, passwordHelp []string) templ.Component {
	return page("register", titled("title_register"), RegisterData{
		FormData:     FormData[forms.RegisterForm]{Form: form, Errors: errs},
		PasswordHelp: passwordHelp,
	})
}

// ProfileData is the data of the profile page.
type ProfileData struct {
	FormData[forms.ProfileForm]
	User   *models.User
	Basket []models.BasketLine
}

// BasketTotal sums the basket.
func (d ProfileData) BasketTotal() int64 {
	return models.BasketTotal(d.Basket)
}

// BasketQuantity counts the items in the basket.
func (d ProfileData) BasketQuantity() int64 {
	return models.BasketQuantity(d.Basket)
}

// Profile renders the profile form and the basket.
func Profile(user *models.User, form forms.ProfileForm, errs forms.Errors, basket []models.BasketLine) templ.Component {
	return page("profile", titled("title_profile"), ProfileData{
		FormData: FormData[forms.ProfileForm]{Form: form, Errors: errs},
		User:     user,
		Basket:   basket,
	})
}

// Orders lists the user's orders.
func Orders(orders []models.Order) templ.Component {
	return page("orders", titled("title_orders"), orders)
}

// OrderData is the data of the order detail page.
type OrderData struct {
	Order   *models.Order
	History models.BasketHistory
}

// OrderDetail renders one order with its purchased items.
func OrderDetail(order *models.Order) templ.Component {
	title := func(ctx context.Context) string {
		return i18n.TData(ctx, "order_title", map[string]any{"ID": order.ID})
	}
	return page("order", title, OrderData{Order: order, History: order.History()})
}

// OrderCreateData is the data of the checkout page.
type OrderCreateData struct {
	FormData[forms.OrderForm]
	Basket []models.BasketLine
}

// BasketTotal sums the basket.
func (d OrderCreateData) BasketTotal() int64 {
	return models.BasketTotal(d.Basket)
}

// OrderCreate renders the checkout form next to the basket.
func OrderCreate(form forms.OrderForm, errs forms.Errors, basket []models.BasketLine) templ.Component {
	return page("order_create", titled("title_order_create"), OrderCreateData{
		FormData: FormData[forms.OrderForm]{Form: form, Errors: errs},
		Basket:   basket,
	})
}

// OrderSuccess thanks the user for the order.
func OrderSuccess() templ.Component {
	return page("order_success", titled("title_order_success"), nil)
}

// EmailVerification reports the outcome of a confirmation link.
func EmailVerification(expired bool) templ.Component {
	messageID := "verification_success"
	if expired {
		messageID = "verification_expired"
	}
	return page("email_verification", titled("title_email_verification"), messageID)
}

// ErrorData is the data of the error page.
type ErrorData struct {
	Code    string
	Message string
}

// Error renders an error page.
func Error(code int, message string) templ.Component {
	title := func(ctx context.Context) string {
		return i18n.T(ctx, "error_"+strconv.Itoa(code))
	}
	return page("error", title, ErrorData{Code: strconv.Itoa(code), Message: message})
}
