package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/auth"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/middleware"
)

type staticResolver struct {
	users map[string]*domain.User
}

func (r *staticResolver) Resolve(_ context.Context, token string) (*domain.User, error) {
	if u, ok := r.users[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown session")
}

func newGatedRouter(resolver middleware.TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(resolver))

	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	}
	r.POST("/auth/login", handler)
	r.GET("/api/admin/users", handler)
	r.GET("/api/store/redemptions", handler)
	r.GET("/api/user/me", func(c *gin.Context) {
		user, ok := auth.UserFromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusInternalServerError, "no user in context")
			return
		}
		c.String(http.StatusOK, user.Email)
	})
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
	return r
}

func perform(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	superAdmin := &domain.User{ID: uuid.New(), Email: "root@example.com", Role: domain.RoleSuperAdmin}
	storeAdmin := &domain.User{ID: uuid.New(), Email: "owner@example.com", Role: domain.RoleStoreAdmin}
	customer := &domain.User{ID: uuid.New(), Email: "shopper@example.com", Role: domain.RoleUser}

	resolver := &staticResolver{users: map[string]*domain.User{
		"tok-super": superAdmin,
		"tok-store": storeAdmin,
		"tok-user":  customer,
	}}
	router := newGatedRouter(resolver)

	t.Run("Should return 401 JSON for an API request without a token", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/user/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})

	t.Run("Should redirect a page request without a token to the login page", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/dashboard", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})

	t.Run("Should keep the auth surface open to anonymous callers", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/auth/login", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should return 403 when a store admin hits the admin surface", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/admin/users", "tok-store")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should let a super admin through the store surface", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/store/redemptions", "tok-super")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should deny a customer on the store surface", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/store/redemptions", "tok-user")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should treat an unknown token exactly like an absent one", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/user/me", "tok-forged")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should expose the resolved user to downstream handlers", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/user/me", "tok-user")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "shopper@example.com", w.Body.String())
	})

	t.Run("Should fall back to the session cookie when no header is set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tok-user"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
