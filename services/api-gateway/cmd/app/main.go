package main

import (
	"context"
	"log"
	"strings"

	"eduplay/services/api-gateway/internal/client"
	"eduplay/services/api-gateway/internal/config"
	"eduplay/services/api-gateway/internal/middleware"
	handlers "eduplay/services/api-gateway/internal/transport/http"

	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.REDIS_ADDR,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.REDIS_ADDR)

	rateLimiter := middleware.NewRateLimiter(rdb)

	// 2. Клиенты внутренних сервисов
	authClient := client.NewAuthClient(cfg.AuthSvcUrl)
	userClient := client.NewUserClient(cfg.UserSvcUrl)
	progressClient := client.NewProgressClient(cfg.ProgressSvcUrl)
	analyticsClient := client.NewAnalyticsClient(cfg.AnalyticsSvcUrl)

	// 3. Инициализация хендлеров
	authHandler := handlers.NewAuthHandler(authClient)
	userHandler := handlers.NewUserHandler(userClient)
	progressHandler := handlers.NewProgressHandler(progressClient)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsClient)

	// 4. Роутер
	origins := strings.Split(cfg.AllowedOrigins, ",")
	router := handlers.NewRouter(authHandler, userHandler, progressHandler, analyticsHandler, rateLimiter, authClient, origins)

	// 5. Запуск HTTP сервера
	log.Printf("API Gateway running on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
