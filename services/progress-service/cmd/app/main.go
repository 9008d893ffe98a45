package main

import (
	"fmt"
	"log"

	"eduplay/services/progress-service/config"
	"eduplay/services/progress-service/internal/domain"
	"eduplay/services/progress-service/internal/repository"
	handlers "eduplay/services/progress-service/internal/transport/http"

	"github.com/gin-gonic/gin"
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
	if err := db.AutoMigrate(&domain.GameProgress{}); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// 4. Инициализация слоев
	repo := repository.NewProgressRepository(db)
	server := handlers.NewServer(repo)

	// 5. Запуск HTTP сервера
	r := gin.Default()
	server.Register(r)

	log.Printf("Progress Service running on %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
