package repo

import (
	"context"
	"errors"

	"github.com/catalogo-poli/shop/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Purchase executes checkout for the user's cart inside a single
// transaction: every article row is locked and validated before any stock
// is touched, then decrements run with a stock >= quantity guard so a
// concurrent buyer can never drive stock negative. Any failure rolls the
// whole purchase back.
func (r *GormRepo) Purchase(ctx context.Context, userID string) (totalPrice float64, totalQuantity int, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Validation pass: lock and check every article before the first
		// decrement. sqlite has no FOR UPDATE; there the guarded decrement
		// below still enforces the invariant.
		prices := make(map[string]float64, len(items))
		for _, item := range items {
			q := tx.Session(&gorm.Session{})
			if tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var article models.Article
			if err := q.
				Where("id = ?", item.ArticleID).
				First(&article).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInsufficientStock
				}
				return err
			}
			if article.Stock < item.Quantity {
				return ErrInsufficientStock
			}
			prices[item.ArticleID] = article.Price
		}

		// Commit pass: the guarded UPDATE re-checks stock so the locked
		// figures must still hold, or the transaction aborts whole.
		for _, item := range items {
			res := tx.Model(&models.Article{}).
				Where("id = ? AND stock >= ?", item.ArticleID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
			totalPrice += prices[item.ArticleID] * float64(item.Quantity)
			totalQuantity += item.Quantity
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return totalPrice, totalQuantity, nil
}
