// Package httpapi wires the loyalty services to their JSON routes. All
// access control happens in the middleware chain before a handler runs;
// handlers only re-check tenant-level ownership where a store scope is
// involved.
package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/middleware"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/notify"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/service"
)

// Handler holds all dependencies needed by route handlers.
type Handler struct {
	cfg         *config.Config
	users       *service.UserService
	stores      *service.StoreService
	redemptions *service.RedemptionService
	claims      *service.ClaimService
	visits      *service.VisitService
	preview     *service.PreviewService
	notifier    *notify.Notifier
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg         *config.Config
	Users       *service.UserService
	Stores      *service.StoreService
	Redemptions *service.RedemptionService
	Claims      *service.ClaimService
	Visits      *service.VisitService
	Preview     *service.PreviewService
	Notifier    *notify.Notifier
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:         deps.Cfg,
		users:       deps.Users,
		stores:      deps.Stores,
		redemptions: deps.Redemptions,
		claims:      deps.Claims,
		visits:      deps.Visits,
		preview:     deps.Preview,
		notifier:    deps.Notifier,
	}
}

// Router builds the gin engine with the full middleware chain and route
// table.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recover(), middleware.Logging())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	authGate := middleware.Auth(h.users)

	authSurface := r.Group("/auth", authGate, middleware.AuthRateLimit(h.cfg.AuthRateLimit))
	{
		authSurface.POST("/register", h.handleRegister)
		authSurface.POST("/login", h.handleLogin)
		authSurface.POST("/logout", h.handleLogout)
	}

	admin := r.Group("/api/admin", authGate)
	{
		admin.GET("/stores", h.handleAdminListStores)
		admin.POST("/stores", h.handleAdminCreateStore)
		admin.PATCH("/stores/:id", h.handleAdminUpdateStore)
		admin.GET("/users", h.handleAdminListUsers)
	}

	store := r.Group("/api/store", authGate)
	{
		store.GET("/mine", h.handleStoreMine)
		store.GET("/members", h.handleStoreMembers)
		store.POST("/verify-redemption", h.handleVerifyRedemption)
		store.POST("/use-redemption", h.handleUseRedemption)
		store.GET("/redemptions", h.handleStoreRedemptions)
		store.GET("/claims", h.handleStoreClaims)
		store.POST("/claims/review", h.handleReviewClaim)
		store.POST("/visits", h.handleRecordVisit)
		store.GET("/visits", h.handleStoreVisits)
		store.GET("/link-preview", h.handleLinkPreview)
	}

	user := r.Group("/api/user", authGate)
	{
		user.GET("/me", h.handleMe)
		user.GET("/memberships", h.handleMemberships)
		user.POST("/join-store", h.handleJoinStore)
		user.POST("/redeem-points", h.handleRedeemPoints)
		user.GET("/redemptions", h.handleUserRedemptions)
		user.POST("/claims", h.handleSubmitClaim)
		user.GET("/claims", h.handleUserClaims)
		user.GET("/transactions", h.handleUserTransactions)
	}

	// Unrouted paths still pass through the gate so unauthenticated page
	// requests get redirected to the login surface.
	r.NoRoute(authGate, func(c *gin.Context) {
		c.JSON(404, gin.H{"ok": false, "error": "not found"})
	})

	return r
}

// pagination reads limit/offset query params with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit = config.DefaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, config.MaxPageSize)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
