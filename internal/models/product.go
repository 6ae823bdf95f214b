// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"fmt"
	"time"
)

// Product is an item of the catalog. Prices are stored in cents.
type Product struct { //nolint:govet // fieldalignment not critical for models
	ID          int64     `db:"id" json:"id" toml:"-"`
	Name        string    `db:"name" json:"name" toml:"name"`
	Description string    `db:"description" json:"description" toml:"description"`
	Price       int64     `db:"price" json:"price" toml:"price"`
	Quantity    int64     `db:"quantity" json:"quantity" toml:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at" toml:"-"`
}

// BasketLine is one product in a user's basket.
type BasketLine struct { //nolint:govet // fieldalignment not critical for models
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	ProductID   int64     `db:"product_id" json:"product_id"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ProductName string    `db:"product_name" json:"product_name"`
	Price       int64     `db:"product_price" json:"price"`
}

// Sum returns the line total in cents.
func (b *BasketLine) Sum() int64 {
	return b.Price * b.Quantity
}

// BasketTotal sums all lines.
func BasketTotal(lines []BasketLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].Sum()
	}
	return total
}

// BasketQuantity counts all units in the basket.
func BasketQuantity(lines []BasketLine) int64 {
	var n int64
	for i := range lines {
		n += lines[i].Quantity
	}
	return n
}

// FormatPrice renders cents as "12.34".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
