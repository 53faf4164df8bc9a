package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type LFGHandler struct{}

func NewLFGHandler() *LFGHandler {
	return &LFGHandler{}
}

// List GET /api/lfg
func (h *LFGHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	posts, total, err := services.ListLFG(services.ListingFilter{
		IncludeInactive: c.Query("includeInactive") == "true",
		Activity:        c.Query("activity"),
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

// Create POST /api/lfg
func (h *LFGHandler) Create(c *gin.Context) {
	var in services.LFGInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := services.CreateLFG(middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update PATCH /api/lfg/:id
func (h *LFGHandler) Update(c *gin.Context) {
	var in services.LFGUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := services.UpdateLFG(c.Param("id"), middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete DELETE /api/lfg/:id
func (h *LFGHandler) Delete(c *gin.Context) {
	if err := services.DeleteLFG(c.Param("id"), middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
