// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"encoding/json"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	OrderCreated OrderStatus = iota
	OrderPaid
	OrderOnWay
	OrderDelivered
)

// MessageID returns the translation key for the status.
func (s OrderStatus) MessageID() string {
	switch s {
	case OrderCreated:
		return "order_status_created"
	case OrderPaid:
		return "order_status_paid"
	case OrderOnWay:
		return "order_status_on_way"
	case OrderDelivered:
		return "order_status_delivered"
	default:
		return "order_status_unknown"
	}
}

// Order is placed by its initiator, who is the only user allowed to see it.
type Order struct { //nolint:govet // fieldalignment not critical for models
	ID            int64       `db:"id" json:"id"`
	InitiatorID   int64       `db:"initiator_id" json:"initiator_id"`
	FirstName     string      `db:"first_name" json:"first_name"`
	LastName      string      `db:"last_name" json:"last_name"`
	Email         string      `db:"email" json:"email"`
	Address       string      `db:"address" json:"address"`
	BasketHistory string      `db:"basket_history" json:"-"` // JSON encoded BasketHistory
	Total         int64       `db:"total" json:"total"`
	Status        OrderStatus `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// PurchasedItem is a basket line frozen into an order.
type PurchasedItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	Sum         int64  `json:"sum"`
}

// BasketHistory is the snapshot of the basket at order time.
type BasketHistory struct {
	PurchasedItems []PurchasedItem `json:"purchased_items"`
	TotalSum       int64           `json:"total_sum"`
}

// NewBasketHistory snapshots basket lines.
func NewBasketHistory(lines []BasketLine) BasketHistory {
	h := BasketHistory{PurchasedItems: make([]PurchasedItem, 0, len(lines))}
	for i := range lines {
		l := &lines[i]
		h.PurchasedItems = append(h.PurchasedItems, PurchasedItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Sum:         l.Sum(),
		})
		h.TotalSum += l.Sum()
	}
	return h
}

// History decodes the stored basket snapshot. An empty or invalid
// snapshot yields an empty history.
func (o *Order) History() BasketHistory {
	var h BasketHistory
	if o.BasketHistory == "" {
		return h
	}
	_ = json.Unmarshal([]byte(o.BasketHistory), &h)
	return h
}
