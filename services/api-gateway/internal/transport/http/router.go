package handlers

import (
	"time"

	"eduplay/services/api-gateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	progressHandler *ProgressHandler,
	analyticsHandler *AnalyticsHandler,
	limiter *middleware.RateLimiter,
	validator middleware.TokenValidator,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		api.GET("/leaderboard", userHandler.Leaderboard)

		user := api.Group("/user")
		user.Use(middleware.AuthMiddleware(validator))
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PUT("/username", userHandler.UpdateUsername)
			user.POST("/score", userHandler.AddScore)
			user.POST("/avatar", userHandler.SetAvatar)
			user.POST("/avatars/buy", userHandler.BuyAvatar)
		}

		games := api.Group("/games")
		games.Use(middleware.AuthMiddleware(validator))
		{
			games.GET("/:game/progress", progressHandler.GetProgress)
			games.POST("/:game/progress", progressHandler.SaveProgress)
		}

		analytics := api.Group("/analytics")
		analytics.Use(middleware.AuthMiddleware(validator))
		{
			analytics.POST("/visit", analyticsHandler.LogVisit)
			analytics.POST("/gameover", analyticsHandler.LogGameOver)
		}
	}

	return r
}
