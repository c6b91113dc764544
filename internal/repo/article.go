package repo

import (
	"context"
	"errors"

	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/transport"
	"gorm.io/gorm"
)

func (r *GormRepo) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *GormRepo) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *GormRepo) CreateArticle(ctx context.Context, article *models.Article) error {
	return r.DB.WithContext(ctx).Create(article).Error
}

// CreateArticles inserts the batch in one statement; all rows or none.
func (r *GormRepo) CreateArticles(ctx context.Context, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&articles).Error
}

func (r *GormRepo) UpdateArticle(ctx context.Context, id string, req transport.UpdateArticleRequest) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		article.Name = *req.Name
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Price != nil {
		article.Price = *req.Price
	}
	if req.Stock != nil {
		article.Stock = *req.Stock
	}

	if err := r.DB.WithContext(ctx).Save(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *GormRepo) DeleteArticle(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Article{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *GormRepo) SearchArticlesByName(ctx context.Context, query string) ([]models.Article, error) {
	var articles []models.Article
	if err := r.DB.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *GormRepo) SearchArticlesAdvanced(ctx context.Context, f transport.AdvancedSearchRequest) ([]models.Article, error) {
	q := r.DB.WithContext(ctx).Model(&models.Article{})
	if f.Name != nil && *f.Name != "" {
		q = q.Where("name LIKE ?", "%"+*f.Name+"%")
	}
	if f.Category != nil && *f.Category != "" {
		q = q.Where("category LIKE ?", "%"+*f.Category+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var articles []models.Article
	if err := q.Order("name ASC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}
