package domain

import (
	"time"

	"github.com/google/uuid"
)

// Визит на игровую сцену. Два события на сессию: вход (0 секунд)
// и выход (сколько провели на сцене).
type PageVisit struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;index"`
	Scene   string    `gorm:"size:64;index"`
	Seconds int

	CreatedAt time.Time
}

// Проигрыш: неверный ответ или вышло время.
type GameOverEvent struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Scene  string    `gorm:"size:64;index"`

	CreatedAt time.Time
}
