package repository

import (
	"context"
	"errors"
	"log"
	"strconv"

	"eduplay/services/user-service/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const leaderboardKey = "leaderboard:score"

var (
	ErrNotEnoughBalance   = errors.New("not enough balance")
	ErrAvatarNotOwned     = errors.New("avatar is not unlocked")
	ErrAvatarAlreadyOwned = errors.New("avatar already unlocked")
	ErrUnknownAvatar      = errors.New("unknown avatar id")
)

type ProfileRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewProfileRepository(db *gorm.DB, rdb *redis.Client) *ProfileRepository {
	return &ProfileRepository{db: db, rdb: rdb}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).
		Preload("UnlockedAvatars").
		Where("id = ?", id).
		First(&profile).Error
	return &profile, err
}

func (r *ProfileRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("username", username).Error
}

// AddScore начисляет очки и валюту одним апдейтом и двигает игрока
// в таблице лидеров. Возвращает профиль после начисления.
func (r *ProfileRepository) AddScore(ctx context.Context, id uuid.UUID, delta int) (*domain.Profile, error) {
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_score": gorm.Expr("total_score + ?", delta),
			"balance":     gorm.Expr("balance + ?", delta),
		}).Error
	if err != nil {
		return nil, err
	}

	// Лидерборд живёт в Redis; его отказ не отменяет начисление,
	// рассинхрон поправится при следующем начислении.
	if err := r.rdb.ZIncrBy(ctx, leaderboardKey, float64(delta), id.String()).Err(); err != nil {
		log.Printf("Leaderboard update failed for %s: %v", id, err)
	}

	return r.GetByID(ctx, id)
}

// SetAvatar ставит аватарку, если она бесплатная или куплена.
func (r *ProfileRepository) SetAvatar(ctx context.Context, id uuid.UUID, avatarID int) error {
	price, ok := domain.AvatarPrice(avatarID)
	if !ok {
		return ErrUnknownAvatar
	}

	if price > 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&domain.UnlockedAvatar{}).
			Where("user_id = ? AND avatar_id = ?", id, avatarID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrAvatarNotOwned
		}
	}

	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("avatar_id", avatarID).Error
}

// purchaseCheck — решение о покупке до списания средств.
// Повторная покупка отклоняется раньше проверки баланса.
func purchaseCheck(balance, price int, owned bool) error {
	if owned {
		return ErrAvatarAlreadyOwned
	}
	if balance < price {
		return ErrNotEnoughBalance
	}
	return nil
}

// BuyAvatar списывает цену с баланса и открывает аватарку.
// Всё в одной транзакции: владение и баланс проверяются под
// блокировкой строки профиля, деньги списываются только если
// аватарка ещё не куплена.
func (r *ProfileRepository) BuyAvatar(ctx context.Context, id uuid.UUID, avatarID int) error {
	price, ok := domain.AvatarPrice(avatarID)
	if !ok {
		return ErrUnknownAvatar
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile domain.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&profile).Error; err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&domain.UnlockedAvatar{}).
			Where("user_id = ? AND avatar_id = ?", id, avatarID).
			Count(&owned).Error; err != nil {
			return err
		}

		if err := purchaseCheck(profile.Balance, price, owned > 0); err != nil {
			return err
		}

		if err := tx.Model(&domain.Profile{}).
			Where("id = ?", id).
			Update("balance", gorm.Expr("balance - ?", price)).Error; err != nil {
			return err
		}

		return tx.Create(&domain.UnlockedAvatar{UserID: id, AvatarID: avatarID}).Error
	})
}

type LeaderboardEntry struct {
	UserID   string
	Username string
	Score    int
}

// Leaderboard читает топ из Redis и добирает имена из Postgres.
func (r *ProfileRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	scores, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(scores))
	for _, z := range scores {
		memberID, _ := z.Member.(string)
		uid, err := uuid.Parse(memberID)
		if err != nil {
			continue
		}

		var profile domain.Profile
		username := "player_" + strconv.Itoa(len(entries)+1)
		if err := r.db.WithContext(ctx).Select("username").Where("id = ?", uid).First(&profile).Error; err == nil {
			username = profile.Username
		}

		entries = append(entries, LeaderboardEntry{
			UserID:   memberID,
			Username: username,
			Score:    int(z.Score),
		})
	}
	return entries, nil
}
