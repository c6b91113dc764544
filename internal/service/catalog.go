package service

import (
	"context"
	"fmt"

	"github.com/catalogo-poli/shop/internal/cache"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/search"
	"github.com/catalogo-poli/shop/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Search *search.Client
	Cache  *cache.Cache
}

func (s *CatalogService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.Repo.GetArticleByID(ctx, id)
}

func (s *CatalogService) ListArticles(ctx context.Context) ([]models.Article, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.list")

	var cached []models.Article
	hit, err := s.Cache.Get(ctx, cache.KeyCatalog, &cached)
	if err != nil {
		l.Warn("cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	articles, err := s.Repo.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, cache.KeyCatalog, articles, cache.CatalogTTL); err != nil {
		l.Warn("cache write failed", "error", err)
	}
	return articles, nil
}

func (s *CatalogService) CreateArticle(ctx context.Context, req transport.CreateArticleRequest) (*models.Article, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if req.Name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}

	article := models.Article{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.Repo.CreateArticle(ctx, &article); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, &article, false)
	l.Info("article created", "article_id", article.ID)
	return &article, nil
}

// CreateArticles validates the whole batch before inserting anything, so a
// single bad entry rejects the request without partial writes.
func (s *CatalogService) CreateArticles(ctx context.Context, reqs []transport.CreateArticleRequest) ([]models.Article, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_batch")

	articles := make([]models.Article, 0, len(reqs))
	for _, req := range reqs {
		if req.Name == "" {
			return nil, fmt.Errorf("name required: %w", ErrValidation)
		}
		if req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		if req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
		}
		articles = append(articles, models.Article{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
		})
	}

	if err := s.Repo.CreateArticles(ctx, articles); err != nil {
		return nil, err
	}
	for i := range articles {
		s.afterMutation(ctx, &articles[i], false)
	}

	l.Info("articles created", "count", len(articles))
	return articles, nil
}

func (s *CatalogService) UpdateArticle(ctx context.Context, id string, req transport.UpdateArticleRequest) (*models.Article, error) {
	if !req.AnyFieldSet() {
		return nil, fmt.Errorf("at least one field required: %w", ErrValidation)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}

	article, err := s.Repo.UpdateArticle(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, article, false)
	return article, nil
}

func (s *CatalogService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.Repo.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, &models.Article{ID: id}, true)
	return nil
}

// SearchArticles serves the catalog search; Elasticsearch when configured,
// SQL pattern match otherwise.
func (s *CatalogService) SearchArticles(ctx context.Context, query string, from, size int) ([]models.Article, error) {
	if query == "" {
		return nil, fmt.Errorf("query required: %w", ErrValidation)
	}
	if s.Search != nil {
		_, articles, err := s.Search.Search(ctx, query, from, size)
		return articles, err
	}
	return s.Repo.SearchArticlesByName(ctx, query)
}

func (s *CatalogService) AdvancedSearch(ctx context.Context, req transport.AdvancedSearchRequest) ([]models.Article, error) {
	return s.Repo.SearchArticlesAdvanced(ctx, req)
}

func (s *CatalogService) afterMutation(ctx context.Context, article *models.Article, deleted bool) {
	l := logging.FromContext(ctx)

	if err := s.Cache.Delete(ctx, cache.KeyCatalog); err != nil {
		l.Warn("cache invalidation failed", "error", err)
	}

	var err error
	if deleted {
		err = s.Search.DeleteArticle(ctx, article.ID)
	} else {
		err = s.Search.IndexArticle(ctx, article)
	}
	if err != nil {
		l.Warn("search index update failed", "article_id", article.ID, "error", err)
	}
}
