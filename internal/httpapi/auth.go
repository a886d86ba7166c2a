package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/auth"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/middleware"
)

func (h *Handler) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	h.notifier.Registration(user.Name, user.Email)
	respondOK(c, toUserView(user))
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	maxAge := h.cfg.SessionTTLHours * 3600
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
	respondOK(c, gin.H{"token": token, "user": toUserView(user)})
}

func (h *Handler) handleLogout(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		if err := h.users.Logout(c.Request.Context(), token); err != nil {
			respondErr(c, err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	respondOK(c, nil)
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 {
		return header[7:]
	}
	return ""
}

// currentUser returns the authenticated caller. The gate guarantees one
// exists on every protected route.
func currentUser(c *gin.Context) (*domain.User, bool) {
	u, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope{OK: false, Error: "authentication required"})
		c.Abort()
	}
	return u, ok
}
