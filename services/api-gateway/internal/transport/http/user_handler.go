package handlers

import (
	"net/http"
	"strconv"

	"eduplay/services/api-gateway/internal/client"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userClient *client.UserClient
}

func NewUserHandler(uc *client.UserClient) *UserHandler {
	return &UserHandler{userClient: uc}
}

// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userId") // Из AuthMiddleware

	res, err := h.userClient.GetProfile(c, userID)
	if err != nil {
		writeRemoteError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /api/v1/user/username
func (h *UserHandler) UpdateUsername(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userClient.UpdateUsername(c, userID, req.Username); err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/user/score
func (h *UserHandler) AddScore(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		Delta int `json:"delta" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.userClient.AddScore(c, userID, req.Delta)
	if err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/user/avatar
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		AvatarID int `json:"avatar_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.userClient.SetAvatar(c, userID, req.AvatarID); err != nil {
		writeRemoteError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/user/avatars/buy
func (h *UserHandler) BuyAvatar(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		AvatarID int `json:"avatar_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.userClient.BuyAvatar(c, userID, req.AvatarID); err != nil {
		writeRemoteError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/leaderboard
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	res, err := h.userClient.Leaderboard(c, limit)
	if err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, res)
}
