package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/catalogo-poli/shop/internal/hash"
	"github.com/catalogo-poli/shop/internal/logging"
	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/tokens"
	"github.com/catalogo-poli/shop/internal/transport"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type LoginResult struct {
	Token    string
	Role     string
	FullName string
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, ErrEmailInvalid
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	if req.Password != req.Password2 {
		return nil, ErrPasswordMismatch
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		FullName:     req.FullName,
		Username:     req.Email,
		PasswordHash: pwHash,
		Role:         roleFromRequest(req.Role),
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "reason", "email already registered")
			return nil, err
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	l.Info("user registered", "role", user.Role)
	return &user, nil
}

// roleFromRequest collapses the legacy "user"/"shopper" aliases onto the
// shopper role; any other explicit value registers an admin.
func roleFromRequest(role string) string {
	switch role {
	case "", "user", models.RoleShopper:
		return models.RoleShopper
	default:
		return models.RoleAdmin
	}
}

// IssueToken authenticates the credentials and returns a signed session
// token with the login lifetime.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return tokens.Issue(user.Username, user.ID, tokens.LoginTTL, s.JWTSecret)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	token, err := s.IssueToken(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrValidation) {
			l.Warn("login failed", "reason", "invalid username or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return nil, err
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		l.Error("login failed", "error", err)
		return nil, err
	}

	l.Info("login ok", "role", user.Role)
	return &LoginResult{
		Token:    token,
		Role:     user.Role,
		FullName: user.FullName,
	}, nil
}

// CurrentUser resolves a session token to its user record. Any token,
// claim or lookup failure collapses to an unauthenticated result for the
// caller to translate.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := tokens.ClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.Repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, tokens.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
