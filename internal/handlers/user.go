package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me GET /api/me. Email is only ever exposed here, to its owner.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"image":   user.Image,
		"role":    user.Role,
		"isAdmin": user.IsAdmin(),
	})
}

// Profile GET /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := services.GetUserProfile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
