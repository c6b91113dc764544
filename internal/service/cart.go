package service

import (
	"context"
	"fmt"

	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) AddItem(ctx context.Context, userID, articleID string, quantity int) (string, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item", "article_id", articleID)

	if articleID == "" {
		return "", fmt.Errorf("article_id required: %w", ErrValidation)
	}
	if quantity <= 0 {
		return "", fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	cartID, err := s.Repo.AddItem(ctx, userID, articleID, quantity)
	if err != nil {
		return "", err
	}
	l.Info("item added", "cart_id", cartID, "quantity", quantity)
	return cartID, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, articleID string) error {
	if articleID == "" {
		return fmt.Errorf("article_id required: %w", ErrValidation)
	}
	return s.Repo.RemoveItem(ctx, userID, articleID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Repo.ClearCart(ctx, userID)
}

func (s *CartService) Snapshot(ctx context.Context, userID string) (*transport.CartView, error) {
	return s.Repo.CartSnapshot(ctx, userID)
}
