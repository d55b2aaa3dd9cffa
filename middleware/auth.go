package middleware

import (
	"net/http"
	"strings"

	tokenstore "DirectChat/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "current_user_id"
	ContextUsernameKey = "current_username"
	ContextClaimsKey   = "current_claims"
)

// AuthMiddleware requires a valid, unrevoked bearer token.
func AuthMiddleware(secret string, revoked *tokenstore.RevocationList) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := tokenstore.Parse(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if revoked.IsRevoked(claims.JTI) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked (logout)"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*tokenstore.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*tokenstore.Claims)
	return claims, ok
}
