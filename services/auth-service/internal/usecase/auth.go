package usecase

import (
	"context"
	"errors"
	"log"

	"eduplay/services/auth-service/internal/cache"
	"eduplay/services/auth-service/internal/client"
	"eduplay/services/auth-service/internal/domain"
	"eduplay/services/auth-service/internal/repository"
	"eduplay/services/auth-service/internal/security"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthUseCase struct {
	userRepo     *repository.UserRepository
	tokenCache   *cache.TokenCache
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	userClient   *client.UserClient
}

func NewAuthUseCase(
	ur *repository.UserRepository,
	tc *cache.TokenCache,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	uc *client.UserClient,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
		userClient:   uc,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (string, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	// Профиль заводим в user-service. Отказ логируем, юзер уже создан.
	if err := uc.userClient.CreateProfile(ctx, user.ID.String(), email, username); err != nil {
		log.Printf("Error creating profile: %v", err)
	}

	return user.ID.String(), nil
}

type Tokens struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (Tokens, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Tokens{}, ErrInvalidCredentials
		}
		return Tokens{}, err
	}

	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return Tokens{}, ErrInvalidCredentials
	}

	access, refresh, err := uc.tokenManager.Generate(user.ID.String())
	if err != nil {
		return Tokens{}, err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, user.ID.String(), refresh); err != nil {
		return Tokens{}, err
	}

	return Tokens{UserID: user.ID.String(), AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh ротирует пару токенов: старый refresh удаляется из кеша.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return Tokens{}, err
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, refreshToken)
	if err != nil || cachedID != userID {
		return Tokens{}, errors.New("refresh token revoked")
	}

	access, refresh, err := uc.tokenManager.Generate(userID)
	if err != nil {
		return Tokens{}, err
	}

	if err := uc.tokenCache.DeleteRefresh(ctx, refreshToken); err != nil {
		log.Printf("Error deleting old refresh token: %v", err)
	}
	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh); err != nil {
		return Tokens{}, err
	}

	return Tokens{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

// Validate проверяет access-токен для gateway.
func (uc *AuthUseCase) Validate(ctx context.Context, accessToken string) (string, error) {
	return uc.tokenManager.ValidateAccessToken(accessToken)
}
