package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// List GET /api/comments?buildId=|newsId=
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := services.ListComments(c.Query("buildId"), c.Query("newsId"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in services.CommentInput
	if !bindJSON(c, &in) {
		return
	}
	comment, err := services.CreateComment(middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete DELETE /api/comments/:id, author only
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := services.DeleteComment(c.Param("id"), middleware.CurrentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
