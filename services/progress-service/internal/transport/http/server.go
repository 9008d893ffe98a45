package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProgressStore — слой хранения, за интерфейсом ради тестов транспорта.
type ProgressStore interface {
	GetForGame(ctx context.Context, userID uuid.UUID, game string) (map[string]int, error)
	Raise(ctx context.Context, userID uuid.UUID, game, category string, level int) (int, error)
}

type Server struct {
	store ProgressStore
}

func NewServer(store ProgressStore) *Server {
	return &Server{store: store}
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/progress/:userId/:game", s.GetProgress)
	r.POST("/progress/:userId/:game", s.SaveProgress)
}

// GET /progress/:userId/:game
func (s *Server) GetProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	progress, err := s.store.GetForGame(c, userID, c.Param("game"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// POST /progress/:userId/:game
// Сохранение — это всегда "поднять планку", никогда не перезапись вниз.
func (s *Server) SaveProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Category string `json:"category" binding:"required"`
		Level    int    `json:"level" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := s.store.Raise(c, userID, c.Param("game"), req.Category, req.Level)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": req.Category, "unlocked": saved})
}
