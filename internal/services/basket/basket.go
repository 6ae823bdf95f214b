// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package basket manages the per-user shopping basket.
package basket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("basket line not found")
)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Add puts one unit of the product into the user's basket.
func (s *Service) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("loading product: %w", err)
	}
	if err := s.repo.AddToBasket(ctx, userID, productID); err != nil {
		return fmt.Errorf("adding to basket: %w", err)
	}
	slog.InfoContext(ctx, "basket_add", "user_id", userID, "product_id", productID)
	return nil
}

// Remove deletes one of the user's basket lines.
func (s *Service) Remove(ctx context.Context, userID, lineID int64) error {
	err := s.repo.RemoveBasketLine(ctx, userID, lineID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLineNotFound
	}
	if err != nil {
		return fmt.Errorf("removing basket line: %w", err)
	}
	slog.InfoContext(ctx, "basket_remove", "user_id", userID, "line_id", lineID)
	return nil
}

// Lines returns the user's basket.
func (s *Service) Lines(ctx context.Context, userID int64) ([]models.BasketLine, error) {
	lines, err := s.repo.ListBasket(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading basket: %w", err)
	}
	return lines, nil
}
