// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/forms"
	"codeberg.org/oliverandrich/go-storefront/internal/services/basket"
	"codeberg.org/oliverandrich/go-storefront/internal/services/orders"
	"codeberg.org/oliverandrich/go-storefront/internal/templates"
	"github.com/labstack/echo/v4"
)

// OrderHandlers contains the order handlers. All of them require an
// authenticated user.
type OrderHandlers struct {
	orders  *orders.Service
	baskets *basket.Service
	baseURL string
}

// NewOrders creates the order handlers. baseURL prefixes the redirect
// after a successful checkout.
func NewOrders(orderService *orders.Service, baskets *basket.Service, baseURL string) *OrderHandlers {
	return &OrderHandlers{
		orders:  orderService,
		baskets: baskets,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// List renders the user's orders, newest first.
func (h *OrderHandlers) List(c echo.Context) error {
	list, err := h.orders.ListForUser(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return fmt.Errorf("listing orders: %w", err)
	}
	return Render(c, http.StatusOK, templates.Orders(list))
}

// Detail renders one order. Orders of other users redirect to the list.
func (h *OrderHandlers) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetForUser(ctx, user.ID, id)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		return echo.ErrNotFound
	case errors.Is(err, orders.ErrNotOwner):
		slog.WarnContext(ctx, "order_access_denied", "user_id", user.ID, "order_id", id)
		return Redirect(c, http.StatusFound, "/orders")
	case err != nil:
		return fmt.Errorf("loading order: %w", err)
	}

	return Render(c, http.StatusOK, templates.OrderDetail(order))
}

// CreatePage renders the checkout form prefilled from the user's account.
func (h *OrderHandlers) CreatePage(c echo.Context) error {
	user := currentUser(c)
	form := forms.OrderForm{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	return h.renderCreate(c, http.StatusOK, form, nil)
}

// Create places an order for the current user and pays it from the
// basket.
func (h *OrderHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	var form forms.OrderForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Normalize()

	if errs := forms.Validate(ctx, form); errs.Any() {
		return h.renderCreate(c, http.StatusUnprocessableEntity, form, errs)
	}

	_, err := h.orders.Create(ctx, user, orders.Contact{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Address:   form.Address,
	})
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return Redirect(c, http.StatusSeeOther, h.baseURL+"/orders/order-success")
}

// Success thanks the user for the order.
func (h *OrderHandlers) Success(c echo.Context) error {
	return Render(c, http.StatusOK, templates.OrderSuccess())
}

func (h *OrderHandlers) renderCreate(c echo.Context, status int, form forms.OrderForm, errs forms.Errors) error {
	lines, err := h.baskets.Lines(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return fmt.Errorf("loading basket: %w", err)
	}
	return Render(c, status, templates.OrderCreate(form, errs, lines))
}
