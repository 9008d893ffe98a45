package repository

import (
	"context"

	"eduplay/services/analytics-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) CreateVisit(ctx context.Context, visit *domain.PageVisit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *EventRepository) CreateGameOver(ctx context.Context, event *domain.GameOverEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

type VisitSummary struct {
	Visits       int64
	TotalSeconds int64
}

// VisitSummary — сколько раз и как долго игрок был на сценах игры.
func (r *EventRepository) VisitSummary(ctx context.Context, userID uuid.UUID) (VisitSummary, error) {
	var summary VisitSummary

	err := r.db.WithContext(ctx).Model(&domain.PageVisit{}).
		Where("user_id = ?", userID).
		Count(&summary.Visits).Error
	if err != nil {
		return summary, err
	}

	err = r.db.WithContext(ctx).Model(&domain.PageVisit{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(seconds), 0)").
		Scan(&summary.TotalSeconds).Error
	return summary, err
}
