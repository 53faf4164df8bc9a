package handlers

import (
	"net/http"

	"risehub/internal/services"
	"risehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct{}

func NewLeaderboardHandler() *LeaderboardHandler {
	return &LeaderboardHandler{}
}

// Update POST /api/leaderboard/update. Authenticated by the apiKey in the body.
func (h *LeaderboardHandler) Update(c *gin.Context) {
	var in services.LeaderboardSubmission
	if !bindJSON(c, &in) {
		return
	}
	result, err := services.SubmitLeaderboard(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Latest GET /api/leaderboard
func (h *LeaderboardHandler) Latest(c *gin.Context) {
	snapshot, err := services.LatestLeaderboard(services.LeaderboardQuery{
		ActivityType: c.Query("activityType"),
		RankingType:  c.Query("rankingType"),
		Character:    c.Query("character"),
		Region:       c.Query("region"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Activities GET /api/leaderboard/activities
func (h *LeaderboardHandler) Activities(c *gin.Context) {
	c.JSON(http.StatusOK, utils.LeaderboardActivities)
}
