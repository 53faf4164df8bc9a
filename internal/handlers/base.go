package handlers

import (
	"errors"
	"log"
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"
	"risehub/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// respondError maps service errors to status codes. Anything unexpected is
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		log.Printf("[api] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the body and answers 400 itself on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func pagination(c *gin.Context) (page, limit int) {
	page, limit, _ = utils.Pagination(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)
	return page, limit
}

func listResponse(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// viewerID is the session user's id, or "" for anonymous requests.
func viewerID(c *gin.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}
