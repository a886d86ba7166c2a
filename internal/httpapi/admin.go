package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) handleAdminListStores(c *gin.Context) {
	limit, offset := pagination(c)
	stores, err := h.stores.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"stores": stores})
}

func (h *Handler) handleAdminCreateStore(c *gin.Context) {
	var req createStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	store, err := h.stores.Create(c.Request.Context(), ownerID, req.Name, req.WebsiteURL,
		req.ConversionRate, req.PointsPerVisit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"store": store})
}

func (h *Handler) handleAdminUpdateStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var req updateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	store, err := h.stores.UpdateSettings(c.Request.Context(), storeID,
		req.ConversionRate, req.PointsPerVisit, *req.Active)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"store": store})
}

func (h *Handler) handleAdminListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.users.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	respondOK(c, gin.H{"users": views})
}
