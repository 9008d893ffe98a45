package main

import (
	"context"
	"fmt"
	"log"

	"eduplay/services/auth-service/config"
	"eduplay/services/auth-service/internal/cache"
	"eduplay/services/auth-service/internal/client"
	"eduplay/services/auth-service/internal/domain"
	"eduplay/services/auth-service/internal/repository"
	"eduplay/services/auth-service/internal/security"
	handlers "eduplay/services/auth-service/internal/transport/http"
	"eduplay/services/auth-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// 3. Миграции
	log.Println("Running migrations...")
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// 4. Инициализация слоев
	userRepo := repository.NewUserRepository(db)
	tokenCache := cache.NewTokenCache(rdb)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	userClient := client.NewUserClient(cfg.UserSvcUrl)

	auth := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager, userClient)
	server := handlers.NewServer(auth)

	// 5. Запуск HTTP сервера
	r := gin.Default()
	server.Register(r)

	log.Printf("Auth Service running on %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
