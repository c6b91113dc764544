package service

import (
	"context"

	"github.com/catalogo-poli/shop/internal/cache"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/transport"
)

type CheckoutService struct {
	Repo  *repo.GormRepo
	Cache *cache.Cache
}

// Purchase runs the atomic checkout and returns the receipt. Callers see
// either a full receipt or a single failure, never a partial purchase.
func (s *CheckoutService) Purchase(ctx context.Context, userID string) (*transport.Receipt, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.purchase")

	totalPrice, totalQuantity, err := s.Repo.Purchase(ctx, userID)
	if err != nil {
		return nil, err
	}

	// stock changed, drop stale catalog reads
	if err := s.Cache.Delete(ctx, cache.KeyCatalog); err != nil {
		l.Warn("cache invalidation failed", "error", err)
	}

	l.Info("purchase complete", "total_price", totalPrice, "total_quantity", totalQuantity)
	return &transport.Receipt{
		Message:       "Compra realizada con éxito",
		TotalQuantity: totalQuantity,
		TotalPrice:    totalPrice,
	}, nil
}
