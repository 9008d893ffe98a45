package main

import (
	"fmt"
	"log"

	"eduplay/services/analytics-service/config"
	"eduplay/services/analytics-service/internal/domain"
	"eduplay/services/analytics-service/internal/repository"
	handlers "eduplay/services/analytics-service/internal/transport/http"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("DB Connection failed:", err)
	}

	// Миграция
	if err := db.AutoMigrate(&domain.PageVisit{}, &domain.GameOverEvent{}); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := repository.NewEventRepository(db)
	server := handlers.NewServer(repo)

	r := gin.Default()
	server.Register(r)

	log.Printf("Analytics Service running on %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
