package handlers

import (
	"net/http"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

type BuildHandler struct{}

func NewBuildHandler() *BuildHandler {
	return &BuildHandler{}
}

// List GET /api/builds
func (h *BuildHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	builds, total, err := services.ListBuilds(services.BuildFilter{
		CharacterID: c.Query("characterId"),
		UserID:      c.Query("userId"),
		Sort:        c.Query("sort"),
		Page:        page,
		Limit:       limit,
		ViewerID:    viewerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, builds, total, page, limit)
}

// Detail GET /api/builds/:id
func (h *BuildHandler) Detail(c *gin.Context) {
	build, err := services.GetBuild(c.Param("id"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, build)
}

// Create POST /api/builds
func (h *BuildHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var in services.BuildInput
	if !bindJSON(c, &in) {
		return
	}

	build, err := services.CreateBuild(user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, build)
}

// Update PATCH /api/builds/:id
func (h *BuildHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var in services.BuildUpdateInput
	if !bindJSON(c, &in) {
		return
	}

	build, err := services.UpdateBuild(c.Param("id"), user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, build)
}

// Delete DELETE /api/builds/:id
func (h *BuildHandler) Delete(c *gin.Context) {
	if err := services.DeleteBuild(c.Param("id"), middleware.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type voteRequest struct {
	Value int `json:"value"`
}

// Vote POST /api/builds/:id/vote
func (h *BuildHandler) Vote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := services.VoteBuild(middleware.CurrentUser(c).ID, c.Param("id"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
