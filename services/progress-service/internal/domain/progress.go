package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameProgress — планка открытых уровней игрока в одной категории игры.
// Значение только растёт; запись создаётся при первом сохранении.
type GameProgress struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Game     string    `gorm:"primaryKey;size:64"`
	Category string    `gorm:"primaryKey;size:32"`

	UnlockedLevels int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
