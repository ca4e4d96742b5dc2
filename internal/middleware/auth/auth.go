// Package auth provides JWT session issuing and verification for the
// management console. Sessions are server-issued bearer tokens with a
// fixed lifetime; an expired token fails verification and the client
// must log in again.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/response"
)

// ContextKeyAdmin is the gin context key holding the authenticated username
const ContextKeyAdmin = "admin_username"

// ErrInvalidToken is returned when a token fails signature or claim checks
var ErrInvalidToken = errors.New("invalid or expired session token")

// Claims carries the session payload inside the JWT
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies admin session tokens
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewTokenManager creates a token manager with the given signing secret
// and session lifetime
func NewTokenManager(secret string, sessionTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}, nil
}

// Issue creates a signed session token for the given admin username and
// returns the token together with its expiry time
func (m *TokenManager) Issue(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.sessionTTL)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a session token, returning its claims
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RequireAdmin returns middleware that rejects requests without a valid
// session token in the Authorization header
func (m *TokenManager) RequireAdmin() gin.HandlerFunc {
	log := logger.Handler("auth")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.UnauthorizedError(c, "authorization required")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.UnauthorizedError(c, "authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims, err := m.Verify(tokenString)
		if err != nil {
			log.Debug("rejected session token", "path", c.Request.URL.Path, "error", err)
			response.UnauthorizedError(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextKeyAdmin, claims.Username)
		c.Next()
	}
}
