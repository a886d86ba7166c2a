package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

// Request bodies. Validated at the boundary; malformed input never
// reaches the services.

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createStoreRequest struct {
	OwnerID        string `json:"ownerId" binding:"required,uuid"`
	Name           string `json:"name" binding:"required"`
	WebsiteURL     string `json:"websiteUrl"`
	ConversionRate int64  `json:"conversionRate"`
	PointsPerVisit int64  `json:"pointsPerVisit"`
}

type updateStoreRequest struct {
	ConversionRate int64 `json:"conversionRate" binding:"required,gt=0"`
	PointsPerVisit int64 `json:"pointsPerVisit" binding:"gte=0"`
	Active         *bool `json:"active" binding:"required"`
}

type joinStoreRequest struct {
	StoreID string `json:"storeId" binding:"required,uuid"`
}

type redeemPointsRequest struct {
	StoreID string `json:"storeId" binding:"required,uuid"`
}

type redemptionCodeRequest struct {
	StoreID string `json:"storeId" binding:"required,uuid"`
	Code    string `json:"code" binding:"required"`
}

type submitClaimRequest struct {
	StoreID     string          `json:"storeId" binding:"required,uuid"`
	VisitedAt   time.Time       `json:"visitedAt" binding:"required"`
	AmountSpent decimal.Decimal `json:"amountSpent"`
}

type reviewClaimRequest struct {
	ClaimID string `json:"claimId" binding:"required,uuid"`
	StoreID string `json:"storeId" binding:"required,uuid"`
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Reason  string `json:"reason"`
}

type recordVisitRequest struct {
	StoreID     string          `json:"storeId" binding:"required,uuid"`
	UserID      string          `json:"userId" binding:"required,uuid"`
	AmountSpent decimal.Decimal `json:"amountSpent"`
}

// redemptionView is the staff-facing wire shape returned by verify.
type redemptionView struct {
	Code           string     `json:"code"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
	RewardValueGBP int64      `json:"rewardValueGBP"`
	PointsUsed     int64      `json:"pointsUsed"`
	RedemptionDate time.Time  `json:"redemptionDate"`
	Used           bool       `json:"used"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
}

func toRedemptionView(d *domain.RedemptionDetails) redemptionView {
	return redemptionView{
		Code:           d.Code,
		UserName:       d.UserName,
		UserEmail:      d.UserEmail,
		RewardValueGBP: d.RewardValueGBP,
		PointsUsed:     d.PointsUsed,
		RedemptionDate: d.CreatedAt,
		Used:           d.Status == domain.RedemptionUsed,
		UsedAt:         d.UsedAt,
	}
}

type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Response envelope: {"ok": true, "data": ...} / {"ok": false, "error": ...}.

type envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{OK: true, Data: data})
}

func respondErr(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		// Unexpected failures are logged and surfaced generically,
		// never leaking internal detail.
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		msg = "internal error"
	}
	c.JSON(status, envelope{OK: false, Error: msg})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, envelope{OK: false, Error: "invalid request: " + err.Error()})
}

// errorStatus maps the domain taxonomy onto HTTP statuses. Every
// recoverable condition keeps its distinct, user-displayable message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCodeFormat),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrStoreNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrMembershipNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrCodeAlreadyUsed),
		errors.Is(err, domain.ErrClaimReviewed),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
