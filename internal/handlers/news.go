package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct{}

func NewNewsHandler() *NewsHandler {
	return &NewsHandler{}
}

// List GET /api/news
func (h *NewsHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	posts, total, err := services.ListNews(services.NewsFilter{
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
		ViewerID: viewerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, posts, total, page, limit)
}

// Detail GET /api/news/:id
func (h *NewsHandler) Detail(c *gin.Context) {
	post, err := services.GetNews(c.Param("id"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Vote POST /api/news/:id/vote
func (h *NewsHandler) Vote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := services.VoteNews(middleware.CurrentUser(c).ID, c.Param("id"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
