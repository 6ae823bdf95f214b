// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

// AddToBasket adds one unit of a product to the user's basket.
func (r *Repository) AddToBasket(ctx context.Context, userID, productID int64) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO baskets (user_id, product_id, quantity, created_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(user_id, product_id) DO UPDATE SET quantity = quantity + 1`,
		userID, productID, time.Now().UTC())
	return err
}

// RemoveBasketLine deletes a basket line owned by the user.
func (r *Repository) RemoveBasketLine(ctx context.Context, userID, lineID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM baskets WHERE id = ? AND user_id = ?`, lineID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListBasket returns the user's basket lines with product name and price.
func (r *Repository) ListBasket(ctx context.Context, userID int64) ([]models.BasketLine, error) {
	var lines []models.BasketLine
	err := r.q.SelectContext(ctx, &lines,
		`SELECT b.id, b.user_id, b.product_id, b.quantity, b.created_at,
		        p.name AS product_name, p.price AS product_price
		 FROM baskets b JOIN products p ON p.id = b.product_id
		 WHERE b.user_id = ?
		 ORDER BY b.created_at, b.id`, userID)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ClearBasket deletes all basket lines of the user.
func (r *Repository) ClearBasket(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM baskets WHERE user_id = ?`, userID)
	return err
}
