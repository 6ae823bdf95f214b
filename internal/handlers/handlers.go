// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"codeberg.org/oliverandrich/go-storefront/internal/templates"
	"github.com/labstack/echo/v4"
)

// Handlers contains the site-wide HTTP handlers.
type Handlers struct {
	repo *repository.Repository
}

// New creates a new Handlers instance.
func New(repo *repository.Repository) *Handlers {
	return &Handlers{repo: repo}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.repo.DB().PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the product index.
func (h *Handlers) Home(c echo.Context) error {
	products, err := h.repo.ListProducts(c.Request().Context())
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	return Render(c, http.StatusOK, templates.Home(products))
}

// flasher is embedded by handler groups that set flash messages.
type flasher struct {
	sessions *session.Manager
}
