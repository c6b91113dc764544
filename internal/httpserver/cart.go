package httpserver

import (
	"errors"
	"net/http"

	"github.com/catalogo-poli/shop/internal/events"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/service"
	"github.com/catalogo-poli/shop/internal/transport"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc      *service.CartService
	Checkout *service.CheckoutService
	Producer *events.Producer
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cartID, err := h.Svc.AddItem(ctx, user.ID, req.ArticleID, req.Quantity)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			l.Warn("add_to_cart_error", "status", 400, "reason", "insufficient stock")
			return echo.NewHTTPError(http.StatusBadRequest, "Stock insuficiente")
		}
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "article_id and quantity > 0 required")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, user.ID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    user.ID,
		"article_id": req.ArticleID,
		"quantity":   req.Quantity,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Artículo agregado al carrito",
		"cart_id": cartID,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	user, err := currentUser(c)
	if err != nil {
		return err
	}
	articleID := c.Param("article_id")

	if err := h.Svc.RemoveItem(ctx, user.ID, articleID); err != nil {
		switch {
		case errors.Is(err, repo.ErrCartNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Carrito no encontrado")
		case errors.Is(err, repo.ErrItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Artículo no encontrado en el carrito")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "article_id required")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, user.ID, map[string]any{
		"type":       "cart_item_removed",
		"user_id":    user.ID,
		"article_id": articleID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Artículo eliminado del carrito"})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.Snapshot(ctx, user.ID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, user.ID); err != nil {
		if errors.Is(err, repo.ErrCartNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Carrito no encontrado")
		}
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, user.ID, map[string]any{
		"type":    "cart_cleared",
		"user_id": user.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Carrito vaciado correctamente"})
}

func (h *CartHTTP) Purchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.purchase")

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	receipt, err := h.Checkout.Purchase(ctx, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrCartNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Carrito no encontrado")
		case errors.Is(err, repo.ErrEmptyCart):
			return echo.NewHTTPError(http.StatusBadRequest, "El carrito está vacío")
		case errors.Is(err, repo.ErrInsufficientStock):
			l.Warn("purchase_rejected", "status", 400, "reason", "insufficient stock")
			return echo.NewHTTPError(http.StatusBadRequest, "Stock insuficiente para algunos artículos")
		}
		l.Error("purchase_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, user.ID, map[string]any{
		"type":           "purchase_completed",
		"user_id":        user.ID,
		"total_price":    receipt.TotalPrice,
		"total_quantity": receipt.TotalQuantity,
	})
	return c.JSON(http.StatusOK, receipt)
}
