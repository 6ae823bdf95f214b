// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package catalog imports products from TOML files.
//
// A catalog file lists products as an array of tables:
//
//	[[products]]
//	name = "Mug"
//	description = "Stoneware, 300 ml"
//	price = 1250  # cents
//	quantity = 20
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"github.com/BurntSushi/toml"
)

var ErrEmptyName = errors.New("product name is required")

type file struct {
	Products []models.Product `toml:"products"`
}

// Parse reads products from TOML.
func Parse(r io.Reader) ([]models.Product, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("catalog_unknown_keys", "keys", fmt.Sprint(undecoded))
	}

	for i := range f.Products {
		p := &f.Products[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: %w", i+1, ErrEmptyName)
		}
		if p.Price < 0 || p.Quantity < 0 {
			return nil, fmt.Errorf("product %q: price and quantity must not be negative", p.Name)
		}
	}
	return f.Products, nil
}

// Import upserts products by name in one transaction.
func Import(ctx context.Context, repo *repository.Repository, products []models.Product) error {
	return repo.WithTx(ctx, func(tx *repository.Repository) error {
		for i := range products {
			if err := tx.UpsertProduct(ctx, &products[i]); err != nil {
				return fmt.Errorf("saving %q: %w", products[i].Name, err)
			}
		}
		slog.InfoContext(ctx, "catalog_imported", "products", len(products))
		return nil
	})
}
