package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

// storeScope parses a store id from the request and confirms the caller
// may act for that store (the owner, or a super admin).
func (h *Handler) storeScope(c *gin.Context, rawStoreID string) (*domain.Store, *domain.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, false
	}
	storeID, err := uuid.Parse(rawStoreID)
	if err != nil {
		respondBadRequest(c, errors.New("invalid store id"))
		return nil, nil, false
	}
	store, err := h.stores.Authorize(c.Request.Context(), user, storeID)
	if err != nil {
		respondErr(c, err)
		return nil, nil, false
	}
	return store, user, true
}

func (h *Handler) handleStoreMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stores, err := h.stores.Owned(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"stores": stores})
}

func (h *Handler) handleStoreMembers(c *gin.Context) {
	store, _, ok := h.storeScope(c, c.Query("storeId"))
	if !ok {
		return
	}
	limit, offset := pagination(c)
	members, err := h.stores.Members(c.Request.Context(), store.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"members": members})
}

func (h *Handler) handleVerifyRedemption(c *gin.Context) {
	var req redemptionCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, _, ok := h.storeScope(c, req.StoreID)
	if !ok {
		return
	}

	details, err := h.redemptions.Verify(c.Request.Context(), store.ID, req.Code)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"redemption": toRedemptionView(details)})
}

func (h *Handler) handleUseRedemption(c *gin.Context) {
	var req redemptionCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, _, ok := h.storeScope(c, req.StoreID)
	if !ok {
		return
	}

	if err := h.redemptions.Use(c.Request.Context(), store.ID, req.Code); err != nil {
		respondErr(c, err)
		return
	}

	if details, err := h.redemptions.Verify(c.Request.Context(), store.ID, req.Code); err == nil {
		h.notifier.RedemptionUsed(details.Code, details.RewardValueGBP)
	}
	respondOK(c, nil)
}

func (h *Handler) handleStoreRedemptions(c *gin.Context) {
	store, _, ok := h.storeScope(c, c.Query("storeId"))
	if !ok {
		return
	}
	limit, offset := pagination(c)
	codes, err := h.redemptions.ListByStore(c.Request.Context(), store.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"redemptions": codes})
}

func (h *Handler) handleStoreClaims(c *gin.Context) {
	store, _, ok := h.storeScope(c, c.Query("storeId"))
	if !ok {
		return
	}
	limit, offset := pagination(c)
	status := domain.ClaimStatus(c.Query("status"))
	claims, err := h.claims.ListByStore(c.Request.Context(), store.ID, status, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"claims": claims})
}

func (h *Handler) handleReviewClaim(c *gin.Context) {
	var req reviewClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, reviewer, ok := h.storeScope(c, req.StoreID)
	if !ok {
		return
	}
	claimID, err := uuid.Parse(req.ClaimID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var claim *domain.RewardClaim
	if req.Action == "approve" {
		claim, err = h.claims.Approve(c.Request.Context(), claimID, store.ID, reviewer.ID)
	} else {
		claim, err = h.claims.Reject(c.Request.Context(), claimID, store.ID, reviewer.ID, req.Reason)
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"claim": claim})
}

func (h *Handler) handleRecordVisit(c *gin.Context) {
	var req recordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, staff, ok := h.storeScope(c, req.StoreID)
	if !ok {
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	visit, err := h.visits.Record(c.Request.Context(), userID, store.ID, req.AmountSpent, staff.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"visit": visit})
}

func (h *Handler) handleStoreVisits(c *gin.Context) {
	store, _, ok := h.storeScope(c, c.Query("storeId"))
	if !ok {
		return
	}
	limit, offset := pagination(c)
	visits, err := h.visits.ListByStore(c.Request.Context(), store.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"visits": visits})
}

func (h *Handler) handleLinkPreview(c *gin.Context) {
	store, _, ok := h.storeScope(c, c.Query("storeId"))
	if !ok {
		return
	}
	if store.WebsiteURL == "" {
		respondBadRequest(c, errors.New("store has no website url"))
		return
	}
	preview, err := h.preview.Fetch(c.Request.Context(), store.WebsiteURL)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"preview": preview})
}
