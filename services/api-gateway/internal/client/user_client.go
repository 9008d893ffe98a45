package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type UserClient struct {
	baseURL string
	http    *http.Client
}

func NewUserClient(url string) *UserClient {
	return &UserClient{baseURL: url, http: newHTTPClient()}
}

// Профиль отдаём наружу как есть, без пересборки полей.
type ProfileResponse map[string]json.RawMessage

func (c *UserClient) GetProfile(ctx context.Context, userID string) (ProfileResponse, error) {
	var res ProfileResponse
	err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/profiles/"+userID, nil, &res)
	return res, err
}

func (c *UserClient) UpdateUsername(ctx context.Context, userID, username string) error {
	return doJSON(ctx, c.http, http.MethodPut, c.baseURL+"/profiles/"+userID+"/username", map[string]string{
		"username": username,
	}, nil)
}

func (c *UserClient) AddScore(ctx context.Context, userID string, delta int) (ProfileResponse, error) {
	var res ProfileResponse
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/profiles/"+userID+"/score", map[string]int{
		"delta": delta,
	}, &res)
	return res, err
}

func (c *UserClient) SetAvatar(ctx context.Context, userID string, avatarID int) error {
	return doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/profiles/"+userID+"/avatar", map[string]int{
		"avatar_id": avatarID,
	}, nil)
}

func (c *UserClient) BuyAvatar(ctx context.Context, userID string, avatarID int) error {
	return doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/profiles/"+userID+"/avatars/buy", map[string]int{
		"avatar_id": avatarID,
	}, nil)
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func (c *UserClient) Leaderboard(ctx context.Context, limit int) (LeaderboardResponse, error) {
	var res LeaderboardResponse
	url := fmt.Sprintf("%s/leaderboard?limit=%d", c.baseURL, limit)
	err := doJSON(ctx, c.http, http.MethodGet, url, nil, &res)
	return res, err
}
