// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/go-storefront/internal/services/basket"
	"github.com/labstack/echo/v4"
)

// BasketHandlers changes the current user's basket and sends them back to
// the page they came from.
type BasketHandlers struct {
	baskets *basket.Service
}

// NewBasket creates the basket handlers.
func NewBasket(baskets *basket.Service) *BasketHandlers {
	return &BasketHandlers{baskets: baskets}
}

// Add puts one unit of a product into the basket.
func (h *BasketHandlers) Add(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	err = h.baskets.Add(c.Request().Context(), currentUser(c).ID, productID)
	if errors.Is(err, basket.ErrProductNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("adding to basket: %w", err)
	}

	return Redirect(c, http.StatusSeeOther, backURL(c, "/"))
}

// Remove deletes a basket line.
func (h *BasketHandlers) Remove(c echo.Context) error {
	lineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	err = h.baskets.Remove(c.Request().Context(), currentUser(c).ID, lineID)
	if errors.Is(err, basket.ErrLineNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("removing from basket: %w", err)
	}

	return Redirect(c, http.StatusSeeOther, backURL(c, "/users/profile"))
}
