// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

// UpsertProduct inserts a product or updates the one with the same name.
func (r *Repository) UpsertProduct(ctx context.Context, p *models.Product) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (name, description, price, quantity, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   description = excluded.description,
		   price = excluded.price,
		   quantity = excluded.quantity`,
		p.Name, p.Description, p.Price, p.Quantity, time.Now().UTC())
	if err != nil {
		return err
	}
	return r.q.GetContext(ctx, &p.ID, `SELECT id FROM products WHERE name = ?`, p.Name)
}

// ListProducts returns all products ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.q.SelectContext(ctx, &products,
		`SELECT id, name, description, price, quantity, created_at FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID retrieves a product by ID.
func (r *Repository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.q.GetContext(ctx, &p,
		`SELECT id, name, description, price, quantity, created_at FROM products WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &p, nil
}
