package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxClaims = "session_claims"

// RequireSession validates the Bearer token and stores the claims in
// the Gin context. Role gating beyond "has a valid session" is not the
// content layer's job; every dashboard account may administer content.
func RequireSession(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// SessionClaims extracts the claims stored by RequireSession.
func SessionClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// extractToken pulls the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearer := c.GetHeader("Authorization")
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	return ""
}
