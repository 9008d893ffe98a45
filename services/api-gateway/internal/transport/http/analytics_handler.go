package handlers

import (
	"net/http"

	"eduplay/services/api-gateway/internal/client"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsClient *client.AnalyticsClient
}

func NewAnalyticsHandler(ac *client.AnalyticsClient) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsClient: ac}
}

type visitReq struct {
	Scene   string `json:"scene" binding:"required"`
	Seconds int    `json:"seconds" binding:"min=0"`
}

type gameOverReq struct {
	Scene string `json:"scene" binding:"required"`
}

// POST /api/v1/analytics/visit
func (h *AnalyticsHandler) LogVisit(c *gin.Context) {
	userID := c.GetString("userId")
	var req visitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.analyticsClient.Visit(c, userID, req.Scene, req.Seconds); err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// POST /api/v1/analytics/gameover
func (h *AnalyticsHandler) LogGameOver(c *gin.Context) {
	userID := c.GetString("userId")
	var req gameOverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.analyticsClient.GameOver(c, userID, req.Scene); err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}
