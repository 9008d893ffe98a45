package handlers

import (
	"context"
	"net/http"

	"eduplay/services/analytics-service/internal/domain"
	"eduplay/services/analytics-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventStore interface {
	CreateVisit(ctx context.Context, visit *domain.PageVisit) error
	CreateGameOver(ctx context.Context, event *domain.GameOverEvent) error
	VisitSummary(ctx context.Context, userID uuid.UUID) (repository.VisitSummary, error)
}

type Server struct {
	repo EventStore
}

func NewServer(repo EventStore) *Server {
	return &Server{repo: repo}
}

func (s *Server) Register(r *gin.Engine) {
	r.POST("/visits", s.CreateVisit)
	r.POST("/gameovers", s.CreateGameOver)
	r.GET("/visits/:userId/summary", s.VisitSummary)
}

// POST /visits
func (s *Server) CreateVisit(c *gin.Context) {
	var req struct {
		UserID  string `json:"user_id" binding:"required"`
		Scene   string `json:"scene" binding:"required"`
		Seconds int    `json:"seconds" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	visit := &domain.PageVisit{UserID: uid, Scene: req.Scene, Seconds: req.Seconds}
	if err := s.repo.CreateVisit(c, visit); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record visit"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// POST /gameovers
func (s *Server) CreateGameOver(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Scene  string `json:"scene" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	event := &domain.GameOverEvent{UserID: uid, Scene: req.Scene}
	if err := s.repo.CreateGameOver(c, event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record game over"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// GET /visits/:userId/summary
func (s *Server) VisitSummary(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	summary, err := s.repo.VisitSummary(c, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"visits":        summary.Visits,
		"total_seconds": summary.TotalSeconds,
	})
}
