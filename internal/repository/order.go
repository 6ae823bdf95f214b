// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

const orderColumns = `id, initiator_id, first_name, last_name, email, address, basket_history, total, status, created_at`

// CreateOrder inserts an order and sets its ID and creation time.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	if order.BasketHistory == "" {
		order.BasketHistory = "{}"
	}
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO orders (initiator_id, first_name, last_name, email, address, basket_history, total, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.InitiatorID, order.FirstName, order.LastName, order.Email, order.Address,
		order.BasketHistory, order.Total, order.Status, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = id
	order.CreatedAt = now
	return nil
}

// GetOrderByID retrieves an order by ID.
func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.q.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &order, nil
}

// ListOrdersByInitiator returns the user's orders, newest first.
func (r *Repository) ListOrdersByInitiator(ctx context.Context, initiatorID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.q.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders WHERE initiator_id = ? ORDER BY created_at DESC, id DESC`, initiatorID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderSnapshot stores the basket snapshot, total and status of an order.
func (r *Repository) UpdateOrderSnapshot(ctx context.Context, id int64, basketHistory string, total int64, status models.OrderStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE orders SET basket_history = ?, total = ?, status = ? WHERE id = ?`,
		basketHistory, total, status, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
