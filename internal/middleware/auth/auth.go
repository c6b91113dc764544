package auth

import (
	"net/http"
	"strings"

	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/service"
	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// Middleware resolves the bearer token of each request to a user record.
type Middleware struct {
	Auth *service.AuthService
}

func New(auth *service.AuthService) *Middleware {
	return &Middleware{Auth: auth}
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(next, "")
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(next, models.RoleAdmin)
}

func (m *Middleware) requireRole(next echo.HandlerFunc, role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		user, err := m.Auth.CurrentUser(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		if role != "" && user.Role != role {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// UserFromContext returns the user resolved by RequireAuth.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok
}
