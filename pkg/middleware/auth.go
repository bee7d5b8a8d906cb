package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/internal/sessions"
	"github.com/harborlight/portal/internal/tokens"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on for SSO tokens
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// RequireAuth returns a Gin middleware that verifies Bearer tokens. Locally
// issued JWTs are verified against secret; when ver is non-nil an OIDC
// identity token is accepted as a fallback (staff SSO). Blacklisted tokens
// are rejected regardless of validity.
func RequireAuth(secret string, ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var raw string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		if listed, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw); err == nil && listed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		var claims map[string]interface{}
		if parsed, err := tokens.ParseAccessToken(secret, raw); err == nil {
			claims = map[string]interface{}(parsed)
		} else if ver != nil {
			idToken, verr := ver.Verify(c.Request.Context(), raw)
			if verr != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			if cerr := idToken.Claims(&claims); cerr != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
				return
			}
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("claims", claims)
		if sub, ok := claims["sub"].(string); ok {
			c.Set("userID", sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Next()
	}
}

// OptionalAuth sets the identity keys when a valid locally issued token is
// present and continues anonymously otherwise. Used by public routes that
// record the uploader when known.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		var raw string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
			c.Next()
			return
		}
		if listed, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw); err == nil && listed {
			c.Next()
			return
		}
		if claims, err := tokens.ParseAccessToken(secret, raw); err == nil {
			if sub, ok := claims["sub"].(string); ok {
				c.Set("userID", sub)
			}
			if email, ok := claims["email"].(string); ok {
				c.Set("email", email)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated subject set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString("userID")
}

// Email returns the authenticated email set by RequireAuth.
func Email(c *gin.Context) string {
	return c.GetString("email")
}

// IsAdmin reports whether the current token carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}

// RequireAdmin gates admin-only API routes. Must run after RequireAuth.
// Authorization failures are never detailed to the caller.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
