package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"eduplay/services/user-service/internal/domain"
	"eduplay/services/user-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Server struct {
	repo *repository.ProfileRepository
}

func NewServer(repo *repository.ProfileRepository) *Server {
	return &Server{repo: repo}
}

func (s *Server) Register(r *gin.Engine) {
	r.POST("/profiles", s.CreateProfile)
	r.GET("/profiles/:id", s.GetProfile)
	r.PUT("/profiles/:id/username", s.UpdateUsername)
	r.POST("/profiles/:id/score", s.AddScore)
	r.POST("/profiles/:id/avatar", s.SetAvatar)
	r.POST("/profiles/:id/avatars/buy", s.BuyAvatar)
	r.GET("/leaderboard", s.Leaderboard)
}

func profileJSON(p *domain.Profile) gin.H {
	avatars := make([]int, 0, len(p.UnlockedAvatars))
	for _, a := range p.UnlockedAvatars {
		avatars = append(avatars, a.AvatarID)
	}
	return gin.H{
		"user_id":          p.ID.String(),
		"email":            p.Email,
		"username":         p.Username,
		"avatar_id":        p.AvatarID,
		"total_score":      p.TotalScore,
		"balance":          p.Balance,
		"unlocked_avatars": avatars,
	}
}

// POST /profiles — создаётся auth-сервисом при регистрации
func (s *Server) CreateProfile(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
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

	profile := &domain.Profile{
		ID:       uid,
		Email:    req.Email,
		Username: req.Username,
	}
	if err := s.repo.Create(c, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile_id": profile.ID.String()})
}

// GET /profiles/:id
func (s *Server) GetProfile(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := s.repo.GetByID(c, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profileJSON(profile))
}

// PUT /profiles/:id/username
func (s *Server) UpdateUsername(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.repo.UpdateUsername(c, uid, req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /profiles/:id/score — начисление дельты, в ответе свежий профиль
func (s *Server) AddScore(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := s.repo.AddScore(c, uid, req.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add score"})
		return
	}
	c.JSON(http.StatusOK, profileJSON(profile))
}

// POST /profiles/:id/avatar
func (s *Server) SetAvatar(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		AvatarID int `json:"avatar_id" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	switch err := s.repo.SetAvatar(c, uid, req.AvatarID); {
	case errors.Is(err, repository.ErrUnknownAvatar), errors.Is(err, repository.ErrAvatarNotOwned):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set avatar"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// POST /profiles/:id/avatars/buy
func (s *Server) BuyAvatar(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req struct {
		AvatarID int `json:"avatar_id" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	switch err := s.repo.BuyAvatar(c, uid, req.AvatarID); {
	case errors.Is(err, repository.ErrUnknownAvatar):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAvatarAlreadyOwned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotEnoughBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to buy avatar"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /leaderboard?limit=10
func (s *Server) Leaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := s.repo.Leaderboard(c, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{"user_id": e.UserID, "username": e.Username, "score": e.Score})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
