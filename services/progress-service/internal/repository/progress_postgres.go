package repository

import (
	"context"
	"time"

	"eduplay/services/progress-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetForGame возвращает планки по всем категориям игры.
// Отсутствующие категории не выдумываем — это забота клиента.
func (r *ProgressRepository) GetForGame(ctx context.Context, userID uuid.UUID, game string) (map[string]int, error) {
	var records []domain.GameProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game = ?", userID, game).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	progress := make(map[string]int, len(records))
	for _, rec := range records {
		progress[rec.Category] = rec.UnlockedLevels
	}
	return progress, nil
}

// Raise поднимает планку атомарно: GREATEST на стороне БД, чтобы две
// одновременные записи (два устройства, повторный коммит) не откатили
// прогресс вниз. Возвращает значение после записи.
func (r *ProgressRepository) Raise(ctx context.Context, userID uuid.UUID, game, category string, level int) (int, error) {
	rec := domain.GameProgress{
		UserID:         userID,
		Game:           game,
		Category:       category,
		UnlockedLevels: level,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"unlocked_levels": gorm.Expr("GREATEST(game_progresses.unlocked_levels, EXCLUDED.unlocked_levels)"),
			"updated_at":      time.Now(),
		}),
	}).Create(&rec).Error
	if err != nil {
		return 0, err
	}

	// Перечитываем: при конфликте в rec осталось присланное значение,
	// а не результат GREATEST.
	var saved domain.GameProgress
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND game = ? AND category = ?", userID, game, category).
		First(&saved).Error
	if err != nil {
		return 0, err
	}
	return saved.UnlockedLevels, nil
}
