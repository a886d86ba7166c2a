package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) handleMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	respondOK(c, gin.H{"user": toUserView(user)})
}

func (h *Handler) handleMemberships(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	memberships, err := h.stores.Memberships(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"memberships": memberships})
}

func (h *Handler) handleJoinStore(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req joinStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	membership, err := h.stores.Join(c.Request.Context(), user.ID, storeID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"membership": membership})
}

func (h *Handler) handleRedeemPoints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req redeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.redemptions.Issue(c.Request.Context(), user.ID, storeID)
	if err != nil {
		respondErr(c, err)
		return
	}

	h.notifier.RedemptionIssued(user.Email, result.RewardValueGBP, result.PointsUsed)
	respondOK(c, gin.H{
		"code":           result.Code,
		"rewardValueGBP": result.RewardValueGBP,
		"pointsUsed":     result.PointsUsed,
	})
}

func (h *Handler) handleUserRedemptions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	codes, err := h.redemptions.ListByUser(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"redemptions": codes})
}

func (h *Handler) handleSubmitClaim(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req submitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	claim, err := h.claims.Submit(c.Request.Context(), user.ID, storeID, req.VisitedAt, req.AmountSpent)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"claim": claim})
}

func (h *Handler) handleUserClaims(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	claims, err := h.claims.ListByUser(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"claims": claims})
}

func (h *Handler) handleUserTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	txs, err := h.visits.Transactions(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"transactions": txs})
}
