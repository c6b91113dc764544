package repo

import (
	"context"
	"errors"

	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/transport"
	"gorm.io/gorm"
)

// AddItem creates the user's cart on first use, checks current stock and
// merges into an existing line for the same article instead of creating a
// duplicate row.
func (r *GormRepo) AddItem(ctx context.Context, userID, articleID string, quantity int) (string, error) {
	var cartID string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("id = ?", articleID).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientStock
			}
			return err
		}
		if article.Stock < quantity {
			return ErrInsufficientStock
		}

		cart := models.Cart{UserID: userID}
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}
		cartID = cart.ID

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND article_id = ?", cart.ID, articleID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ArticleID: articleID,
			Quantity:  quantity,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return "", err
	}
	return cartID, nil
}

func (r *GormRepo) RemoveItem(ctx context.Context, userID, articleID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		res := tx.Where("cart_id = ? AND article_id = ?", cart.ID, articleID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

// ClearCart removes every line item and the cart row itself.
func (r *GormRepo) ClearCart(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}

// CartSnapshot joins line items with current article name and price. A user
// with no cart gets an empty view, not an error.
func (r *GormRepo) CartSnapshot(ctx context.Context, userID string) (*transport.CartView, error) {
	view := &transport.CartView{Items: []transport.CartLine{}}

	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}
	view.CartID = cart.ID

	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	for _, item := range items {
		var article models.Article
		if err := r.DB.WithContext(ctx).Where("id = ?", item.ArticleID).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := article.Price * float64(item.Quantity)
		view.Items = append(view.Items, transport.CartLine{
			ArticleID: article.ID,
			Name:      article.Name,
			Price:     article.Price,
			Quantity:  item.Quantity,
			Total:     subtotal,
		})
		view.TotalPrice += subtotal
	}
	return view, nil
}
