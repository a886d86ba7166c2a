package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/auth"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

// SessionCookie is the cookie the login handler sets for browser
// clients. API clients send the same token as a bearer header.
const SessionCookie = "session_token"

// LoginPath is where denied page requests are redirected.
const LoginPath = "/auth/login"

// TokenResolver maps a presented session token to its user.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// Auth resolves the caller's session and enforces the access gate. A
// malformed, expired or unknown token is treated exactly like an absent
// one: the request proceeds unauthenticated and the gate decides.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user *domain.User
		if token := extractToken(c); token != "" {
			u, err := resolver.Resolve(c.Request.Context(), token)
			if err == nil {
				user = u
			}
		}

		var role domain.Role
		if user != nil {
			role = user.Role
		}

		path := c.Request.URL.Path
		if !auth.Allowed(role, path) {
			deny(c, role, path)
			return
		}

		if user != nil {
			ctx := auth.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func deny(c *gin.Context, role domain.Role, path string) {
	if !auth.IsAPIPath(path) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	if !role.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
	} else {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": domain.ErrUnauthorized.Error()})
	}
	c.Abort()
}
