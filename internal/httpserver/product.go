package httpserver

import (
	"errors"
	"net/http"

	"github.com/catalogo-poli/shop/internal/events"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/service"
	"github.com/catalogo-poli/shop/internal/transport"
	"github.com/catalogo-poli/shop/internal/util"
	"github.com/labstack/echo/v4"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *ProductHTTP) GetCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.catalog")

	articles, err := h.Svc.ListArticles(ctx)
	if err != nil {
		l.Error("get_catalog_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"articulos": articles})
}

func (h *ProductHTTP) GetArticleDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.detail")

	article, err := h.Svc.GetArticle(ctx, c.Param("article_id"))
	if err != nil {
		if errors.Is(err, repo.ErrArticleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Artículo no encontrado")
		}
		l.Error("get_article_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"articulo": article})
}

func (h *ProductHTTP) CreateArticle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_article_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	article, err := h.Svc.CreateArticle(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_article_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicArticleEvents, article.ID, map[string]any{
		"type":       "article_created",
		"article_id": article.ID,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Artículo agregado correctamente",
		"articulo": article,
	})
}

func (h *ProductHTTP) CreateArticles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_batch")

	var reqs []transport.CreateArticleRequest
	if err := c.Bind(&reqs); err != nil {
		l.Warn("create_articles_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	articles, err := h.Svc.CreateArticles(ctx, reqs)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_articles_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	for i := range articles {
		publish(c, h.Producer, events.TopicArticleEvents, articles[i].ID, map[string]any{
			"type":       "article_created",
			"article_id": articles[i].ID,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Artículos agregados correctamente",
		"articulos": articles,
	})
}

func (h *ProductHTTP) UpdateArticle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id := c.Param("id")
	var req transport.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_article_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	article, err := h.Svc.UpdateArticle(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrArticleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Artículo no encontrado")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "Debes enviar al menos un campo para actualizar")
		}
		l.Error("update_article_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicArticleEvents, article.ID, map[string]any{
		"type":       "article_updated",
		"article_id": article.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Artículo actualizado correctamente"})
}

func (h *ProductHTTP) DeleteArticle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := c.Param("id")
	if err := h.Svc.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, repo.ErrArticleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Artículo no encontrado")
		}
		l.Error("delete_article_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicArticleEvents, id, map[string]any{
		"type":       "article_deleted",
		"article_id": id,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Artículo eliminado correctamente"})
}

func (h *ProductHTTP) SearchArticles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("query")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), 0)
	from, size := util.Calculate(page, size)

	articles, err := h.Svc.SearchArticles(ctx, q, from, size)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "query required")
		}
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if len(articles) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No se encontraron artículos")
	}
	return c.JSON(http.StatusOK, echo.Map{"articulos": articles})
}

func (h *ProductHTTP) AdvancedSearch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.advanced_search")

	var req transport.AdvancedSearchRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("advanced_search_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	articles, err := h.Svc.AdvancedSearch(ctx, req)
	if err != nil {
		l.Error("advanced_search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"articulos": articles})
}
