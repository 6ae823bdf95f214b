// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package forms defines the HTML forms of the storefront and validates
// them with struct tags.
package forms

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"github.com/go-playground/validator/v10"
)

// NonField is the Errors key for messages not tied to one field.
const NonField = "__all__"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// v is the package-level validator. Custom validations are registered in
// init before first use.
var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

// Errors maps form field names to a localized message.
type Errors map[string]string

// Add records a message for a field, keeping the first one.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Get returns the message for a field.
func (e Errors) Get(field string) string {
	return e[field]
}

// Any reports whether there are errors.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Validate checks s against its validate tags. It returns nil when s is
// valid.
func Validate(ctx context.Context, s any) Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Errors{NonField: err.Error()}
	}

	errs := make(Errors, len(ve))
	for _, fe := range ve {
		errs.Add(fe.Field(), message(ctx, fe))
	}
	return errs
}

func message(ctx context.Context, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "email", "max", "min", "eqfield", "username":
		return i18n.TData(ctx, "validation_"+fe.Tag(), map[string]any{"Param": fe.Param()})
	default:
		return i18n.T(ctx, "validation_invalid")
	}
}

// LoginForm is posted to /users/login.
type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" validate:"-"`
}

// RegisterForm is posted to /users/register.
type RegisterForm struct {
	FirstName       string `form:"first_name" validate:"required,max=64"`
	LastName        string `form:"last_name" validate:"required,max=64"`
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"required,max=254,email"`
	Password        string `form:"password1" validate:"required"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
}

// Normalize trims surrounding whitespace from the text fields.
func (f *RegisterForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

// ProfileForm is posted to /users/profile.
type ProfileForm struct {
	FirstName string `form:"first_name" validate:"required,max=64"`
	LastName  string `form:"last_name" validate:"required,max=64"`
}

// OrderForm is posted to /orders/order-create. It has no initiator field:
// the order always belongs to the requesting user.
type OrderForm struct {
	FirstName string `form:"first_name" validate:"required,max=64"`
	LastName  string `form:"last_name" validate:"required,max=64"`
	Email     string `form:"email" validate:"required,max=254,email"`
	Address   string `form:"address" validate:"required,max=256"`
}

// Normalize trims surrounding whitespace from all fields.
func (f *OrderForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
}
