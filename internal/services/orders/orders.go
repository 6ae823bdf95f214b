// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package orders creates orders from a user's basket and guards access to
// them.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
)

var (
	ErrNotFound = errors.New("order not found")
	ErrNotOwner = errors.New("order belongs to another user")
)

// Contact is the delivery data entered on the order form.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
}

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create places an order for initiator. The order is stored as created and
// then immediately completed from the initiator's basket.
func (s *Service) Create(ctx context.Context, initiator *models.User, contact Contact) (*models.Order, error) {
	order := &models.Order{
		InitiatorID: initiator.ID,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Email:       contact.Email,
		Address:     contact.Address,
		Status:      models.OrderCreated,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	slog.InfoContext(ctx, "order_created", "order_id", order.ID, "user_id", initiator.ID)

	if err := s.UpdateAfterCreation(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateAfterCreation snapshots the initiator's basket into the order, sets
// its total, empties the basket and marks the order paid. The steps run in
// one transaction.
func (s *Service) UpdateAfterCreation(ctx context.Context, order *models.Order) error {
	var (
		history  models.BasketHistory
		snapshot []byte
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		lines, err := tx.ListBasket(ctx, order.InitiatorID)
		if err != nil {
			return fmt.Errorf("loading basket: %w", err)
		}

		history = models.NewBasketHistory(lines)
		snapshot, err = json.Marshal(history)
		if err != nil {
			return fmt.Errorf("encoding basket history: %w", err)
		}

		if err := tx.UpdateOrderSnapshot(ctx, order.ID, string(snapshot), history.TotalSum, models.OrderPaid); err != nil {
			return fmt.Errorf("updating order: %w", err)
		}
		if err := tx.ClearBasket(ctx, order.InitiatorID); err != nil {
			return fmt.Errorf("clearing basket: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.BasketHistory = string(snapshot)
	order.Total = history.TotalSum
	order.Status = models.OrderPaid
	slog.InfoContext(ctx, "order_paid", "order_id", order.ID, "total", order.Total, "items", len(history.PurchasedItems))
	return nil
}

// ListForUser returns the orders the user initiated, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.repo.ListOrdersByInitiator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// GetForUser returns an order only if userID initiated it.
func (s *Service) GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order.InitiatorID != userID {
		return nil, ErrNotOwner
	}
	return order, nil
}
