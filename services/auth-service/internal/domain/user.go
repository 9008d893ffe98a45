package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string
	Email    string `gorm:"uniqueIndex"`
	Password string // bcrypt-хеш

	CreatedAt time.Time
	UpdatedAt time.Time
}
