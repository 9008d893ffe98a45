// Package apiclient — JSON/HTTP клиент платформы для мини-игр.
// Реализует коллабораторов контроллера прогрессии поверх api-gateway.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eduplay/pkg/progression"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken задаёт access-токен для авторизованных запросов.
func (c *Client) SetToken(token string) { c.token = token }

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal: %w", method, path, err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}
	return nil
}

// --- авторизация ---

type AuthResult struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

// Login сохраняет полученный access-токен в клиенте.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err == nil {
		c.token = res.AccessToken
	}
	return res, err
}

// --- прогресс (progression.ProgressStore) ---

type progressResponse struct {
	Progress map[string]int `json:"progress"`
}

func (c *Client) FetchCategoryProgress(ctx context.Context, userID, game string, categories []progression.Category) (map[progression.Category]int, error) {
	var res progressResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/games/"+game+"/progress", nil, &res); err != nil {
		return nil, err
	}
	out := make(map[progression.Category]int, len(res.Progress))
	for cat, n := range res.Progress {
		out[progression.Category(cat)] = n
	}
	return out, nil
}

func (c *Client) SaveCategoryProgress(ctx context.Context, userID, game string, category progression.Category, level int) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/games/"+game+"/progress", map[string]any{
		"category": string(category),
		"level":    level,
	}, nil)
}

// --- очки и профиль (progression.ScoreService) ---

type Profile struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	AvatarID   int    `json:"avatar_id"`
	TotalScore int    `json:"total_score"`
	Balance    int    `json:"balance"`
}

func (c *Client) AddScore(ctx context.Context, userID string, delta int) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/user/score", map[string]int{"delta": delta}, nil)
}

func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/profile", nil, &p)
	return p, err
}

func (c *Client) FetchTotalScore(ctx context.Context, userID string) (int, error) {
	p, err := c.FetchProfile(ctx)
	if err != nil {
		return 0, err
	}
	return p.TotalScore, nil
}

// --- телеметрия (progression.Telemetry) ---

func (c *Client) LogPageVisit(ctx context.Context, userID, scene string, seconds int) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/analytics/visit", map[string]any{
		"scene":   scene,
		"seconds": seconds,
	}, nil)
}

func (c *Client) LogGameOver(ctx context.Context, userID, scene string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/analytics/gameover", map[string]any{
		"scene": scene,
	}, nil)
}

// --- таблица лидеров ---

type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var res struct {
		Entries []LeaderboardEntry `json:"entries"`
	}
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), nil, &res)
	return res.Entries, err
}
