package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/catalogo-poli/shop/internal/events"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/service"
	"github.com/catalogo-poli/shop/internal/tokens"
	"github.com/catalogo-poli/shop/internal/transport"
	"github.com/labstack/echo/v4"
)

const accessTokenCookie = "access_token"

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUserAlreadyExist):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		case errors.Is(err, service.ErrPasswordMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, "Passwords don't match")
		case errors.Is(err, service.ErrEmailInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, "Valid email required")
		case errors.Is(err, service.ErrPasswordRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "Password required")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"role":    user.Role,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully " + user.Username,
	})
}

// Token is the OAuth2-style endpoint: form credentials in, bearer token out.
func (h *AuthHTTP) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.token")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("token_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.IssueToken(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		l.Error("token_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Error in credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  time.Now().Add(tokens.LoginTTL),
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Message:  "Logged in",
		Token:    res.Token,
		Role:     res.Role,
		FullName: res.FullName,
	})
}

// LogOut only clears the client-side cookie: session tokens are stateless
// and stay valid until natural expiry.
func (h *AuthHTTP) LogOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
