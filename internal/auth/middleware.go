package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinaykumarh26/careerport-core/internal/users"
)

const (
	ctxUserID    = "user_id"
	ctxUserRole  = "user_role"
	ctxCSRFToken = "csrf_token"

	CookieName = "token"
)

// RequireAuth resolves the session from the token cookie, falling back to a
// bearer header for non-browser clients.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			h := c.GetHeader("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
				return
			}
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		}
		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Set(ctxCSRFToken, claims.CSRFToken)
		c.Next()
	}
}

// RequireRole gates a route group to a single role. Must run after RequireAuth.
func RequireRole(role users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != role {
			c.AbortWithStatusJSON(403, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequireCSRF rejects mutating requests whose anti-forgery token does not
// match the one issued with the session.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		sent := c.GetHeader("X-CSRF-Token")
		if sent == "" {
			sent = c.PostForm("csrf_token")
		}
		want, _ := c.Get(ctxCSRFToken)
		if sent == "" || sent != want {
			c.AbortWithStatusJSON(403, gin.H{"error": "anti-forgery token validation failed"})
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func CurrentRole(c *gin.Context) users.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if r, ok := v.(users.Role); ok {
			return r
		}
	}
	return ""
}
