package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/catalogo-poli/shop/internal/events"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/middleware/auth"
	"github.com/catalogo-poli/shop/internal/models"
	"github.com/labstack/echo/v4"
)

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "topic", topic, "error", err)
	}
}
