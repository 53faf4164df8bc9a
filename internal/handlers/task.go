package handlers

import (
	"net/http"
	"time"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// List GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	groups, err := services.ListTasks(viewerID(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Toggle POST /api/tasks/:templateId/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	ut, err := services.ToggleTask(middleware.CurrentUser(c).ID, c.Param("templateId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ut)
}

// Reset POST /api/tasks/reset?category=
func (h *TaskHandler) Reset(c *gin.Context) {
	n, err := services.ResetTasks(middleware.CurrentUser(c).ID, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reset": n})
}
