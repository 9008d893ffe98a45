package handlers

import (
	"context"
	"net/http"

	"eduplay/services/api-gateway/internal/client"

	"github.com/gin-gonic/gin"
)

type ProgressGateway interface {
	GetProgress(ctx context.Context, userID, game string) (client.ProgressResponse, error)
	SaveProgress(ctx context.Context, userID, game, category string, level int) (client.SaveProgressResponse, error)
}

type ProgressHandler struct {
	progress ProgressGateway
}

func NewProgressHandler(pc ProgressGateway) *ProgressHandler {
	return &ProgressHandler{progress: pc}
}

// GET /api/v1/games/:game/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := c.GetString("userId")
	game := c.Param("game")

	res, err := h.progress.GetProgress(c, userID, game)
	if err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, res)
}

type saveProgressReq struct {
	Category string `json:"category" binding:"required"`
	Level    int    `json:"level" binding:"required,min=1"`
}

// POST /api/v1/games/:game/progress
func (h *ProgressHandler) SaveProgress(c *gin.Context) {
	userID := c.GetString("userId")
	game := c.Param("game")

	var req saveProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.progress.SaveProgress(c, userID, game, req.Category, req.Level)
	if err != nil {
		writeRemoteError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, res)
}
