package handlers

import (
	"errors"
	"net/http"

	"eduplay/services/auth-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	auth *usecase.AuthUseCase
}

func NewServer(auth *usecase.AuthUseCase) *Server {
	return &Server{auth: auth}
}

func (s *Server) Register(r *gin.Engine) {
	r.POST("/register", s.RegisterUser)
	r.POST("/login", s.Login)
	r.POST("/refresh", s.Refresh)
	r.POST("/logout", s.Logout)
	r.POST("/validate", s.Validate)
}

func tokensJSON(t usecase.Tokens) gin.H {
	return gin.H{
		"user_id":       t.UserID,
		"access_token":  t.AccessToken,
		"refresh_token": t.RefreshToken,
	}
}

// POST /register
func (s *Server) RegisterUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=2"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := s.auth.Register(c, req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": userID})
}

// POST /login
func (s *Server) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := s.auth.Login(c, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, tokensJSON(tokens))
}

// POST /refresh
func (s *Server) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := s.auth.Refresh(c, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, tokensJSON(tokens))
}

// POST /logout
func (s *Server) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.auth.Logout(c, req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /validate — внутренний эндпоинт для gateway
func (s *Server) Validate(c *gin.Context) {
	var req struct {
		AccessToken string `json:"access_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := s.auth.Validate(c, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}
