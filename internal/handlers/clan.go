package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type ClanHandler struct{}

func NewClanHandler() *ClanHandler {
	return &ClanHandler{}
}

// List GET /api/clans
func (h *ClanHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	posts, total, err := services.ListClans(services.ListingFilter{
		IncludeInactive: c.Query("includeInactive") == "true",
		Region:          c.Query("region"),
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, posts, total, page, limit)
}

// Create POST /api/clans
func (h *ClanHandler) Create(c *gin.Context) {
	var in services.ClanInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := services.CreateClan(middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update PATCH /api/clans/:id
func (h *ClanHandler) Update(c *gin.Context) {
	var in services.ClanUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := services.UpdateClan(c.Param("id"), middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete DELETE /api/clans/:id
func (h *ClanHandler) Delete(c *gin.Context) {
	if err := services.DeleteClan(c.Param("id"), middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
