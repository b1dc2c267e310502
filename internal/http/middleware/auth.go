package middleware

import (
	"fmt"
	"strings"

	"concierge/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const requestContextKey = "request_context"

// AuthOptional reads a Bearer token when present. Planning is public, so a
// missing or invalid token only leaves the request anonymous.
func AuthOptional(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(key) == 0 || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		if rc, err := parseToken(strings.TrimSpace(header[7:]), key); err == nil {
			c.Set(requestContextKey, rc)
		}
		c.Next()
	}
}

func parseToken(raw string, key []byte) (domain.RequestContext, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.RequestContext{}, fmt.Errorf("invalid token: %w", err)
	}

	rc := domain.RequestContext{}
	switch v := claims["user_id"].(type) {
	case string:
		rc.UserID = v
	case float64:
		rc.UserID = fmt.Sprintf("%.0f", v)
	}
	if role, ok := claims["role"].(string); ok {
		rc.Role = role
	}
	return rc, nil
}

// GetRequestContext returns the authenticated user, if any.
func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc, true
		}
	}
	return domain.RequestContext{}, false
}
