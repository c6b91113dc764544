package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	// DefaultTTL applies when Issue is called with a non-positive ttl.
	DefaultTTL = 15 * time.Minute
	// LoginTTL is the lifetime requested by the login flow.
	LoginTTL = 60 * time.Minute
)

// SessionClaims is the payload of a stateless session token:
// subject carries the username, UserID the stable user id.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func Issue(subject, userID string, ttl time.Duration, secret []byte) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ClaimsFromToken parses and verifies a session token. Tokens signed with
// any other secret or algorithm fail with ErrInvalidToken.
func ClaimsFromToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
