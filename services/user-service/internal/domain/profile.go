package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex"`
	Username string
	AvatarID int `gorm:"default:1"`

	TotalScore int `gorm:"default:0"` // Сумма очков за все игры
	Balance    int `gorm:"default:0"` // Валюта магазина, начисляется вместе с очками

	// Купленные аватарки
	UnlockedAvatars []UnlockedAvatar `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Таблица купленных аватарок
type UnlockedAvatar struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AvatarID int       `gorm:"primaryKey"` // ID пресета (1-20)
}

// Первые три пресета бесплатные, остальные покупаются за баланс.
const FreeAvatarLimit = 3

func AvatarPrice(avatarID int) (int, bool) {
	if avatarID < 1 || avatarID > 20 {
		return 0, false
	}
	if avatarID <= FreeAvatarLimit {
		return 0, true
	}
	return 50 * (avatarID - FreeAvatarLimit), true
}
